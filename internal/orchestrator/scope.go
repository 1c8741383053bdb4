package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// rootGroup names the group of files that sit directly in the scan root.
const rootGroup = "."

// focusGuidance maps dominant extensions to planning guidance.
var focusGuidance = map[string]string{
	".py":              "prioritize Python packaging, linting, and tests",
	".ts":              "prioritize typed TypeScript modules and contract tests",
	".js":              "prioritize modular JavaScript with lint and test coverage",
	".md":              "prioritize documentation structure and cross-linking",
	models.NoExtension: "prioritize identifying file roles before adding structure",
}

const defaultGuidance = "prioritize a modular architecture with clear boundaries"

const noExtensionsDecision = "No file extensions detected; focus on scaffolding and discovery before planning."

// InspectionScope is the ranked view of where a folder's files live.
type InspectionScope struct {
	// Groups is "dir (n files)" fragments, most populated first.
	Groups []string
	// Largest is "path (size)" fragments, biggest first.
	Largest []string
}

// GroupsText joins Groups, or returns "none".
func (s InspectionScope) GroupsText() string {
	return joinOrNone(s.Groups)
}

// LargestText joins Largest, or returns "none".
func (s InspectionScope) LargestText() string {
	return joinOrNone(s.Largest)
}

// String renders the scope as one line.
func (s InspectionScope) String() string {
	return fmt.Sprintf("Top-level groups: %s; largest files: %s", s.GroupsText(), s.LargestText())
}

// ComputeScope ranks the insight's top-level groups by file count (ties by
// name) and its files by size (ties by path).
func ComputeScope(insight *models.FolderInsight, topGroups, topFiles int) InspectionScope {
	counts := make(map[string]int)
	for _, f := range insight.Files {
		counts[topLevelSegment(f.Path)]++
	}

	groups := make([]string, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if counts[groups[i]] != counts[groups[j]] {
			return counts[groups[i]] > counts[groups[j]]
		}
		return groups[i] < groups[j]
	})
	if len(groups) > topGroups {
		groups = groups[:topGroups]
	}

	files := make([]models.FileInsight, len(insight.Files))
	copy(files, insight.Files)
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].SizeBytes != files[j].SizeBytes {
			return files[i].SizeBytes > files[j].SizeBytes
		}
		return files[i].Path < files[j].Path
	})
	if len(files) > topFiles {
		files = files[:topFiles]
	}

	var scope InspectionScope
	for _, g := range groups {
		scope.Groups = append(scope.Groups, fmt.Sprintf("%s (%d files)", g, counts[g]))
	}
	for _, f := range files {
		scope.Largest = append(scope.Largest, fmt.Sprintf("%s (%s)", f.Path, humanize.Bytes(uint64(f.SizeBytes))))
	}
	return scope
}

// FocusDecision picks the dominant extension and the guidance that goes
// with it.
func FocusDecision(insight *models.FolderInsight) string {
	ext, count, ok := insight.Dominant()
	if !ok {
		return noExtensionsDecision
	}
	guidance, known := focusGuidance[ext]
	if !known {
		guidance = defaultGuidance
	}
	return fmt.Sprintf("Focus on `%s` as the dominant file type (%d file(s)); %s.", ext, count, guidance)
}

func topLevelSegment(relPath string) string {
	head, _, found := strings.Cut(relPath, "/")
	if !found {
		return rootGroup
	}
	return head
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
