// Package version exposes the build version embedded from the VERSION file.
package version

import (
	_ "embed"
	"runtime"
	"strings"
)

//go:embed VERSION
var versionContent string

// Get returns the current version, with whitespace trimmed.
func Get() string {
	return strings.TrimSpace(versionContent)
}

// String returns the one-line banner printed by the version command.
func String() string {
	return "agentbuilder version " + Get() + " (" + runtime.Version() + ")"
}
