// Package planner derives an implementation blueprint from a folder insight.
package planner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

var capabilities = []string{
	"Analyze uploaded folder structure and file types.",
	"Generate implementation plans and tasks as pull-request sized units.",
	"Stream every decision and generated artifact into a human-visible chat window.",
	"Capture feedback and turn it into iterative improvement proposals.",
}

var architecture = []string{
	"Ingestion Agent: scans files, classifies technologies, and builds context.",
	"Planning Agent: proposes tool architecture, milestones, and backlog.",
	"PR Agent: drafts branch names, commit plans, and pull-request descriptions.",
	"Evolution Agent: incorporates human feedback into the next planning cycle.",
}

var tests = []string{
	"Unit tests for folder analysis and blueprint generation.",
	"Contract tests ensuring PR drafts include objective, scope, and validation sections.",
	"Regression tests for evolution logic to ensure feedback is preserved.",
}

// Planner is a rule-based planner that proposes an agentic builder from folder insights.
type Planner struct{}

// New creates a Planner.
func New() *Planner {
	return &Planner{}
}

// Build produces a blueprint for the insight. Triaged backlog items are placed
// ahead of the baseline features, most urgent first.
func (p *Planner) Build(insight *models.FolderInsight, backlog []models.BacklogItem) *models.Blueprint {
	name := filepath.Base(insight.Root)

	summary := fmt.Sprintf(
		"Scanned `%s` with %d files. Detected extension profile: %s. "+
			"The generated system should optimize for transparent chat-first collaboration and PR-first delivery.",
		name, insight.FileCount, extensionProfile(insight))

	return &models.Blueprint{
		Title:        "Agentic Builder for " + name,
		Summary:      summary,
		Capabilities: append([]string(nil), capabilities...),
		Architecture: append([]string(nil), architecture...),
		Tests:        append([]string(nil), tests...),
		Backlog:      prioritizedBacklog(insight, backlog),
	}
}

// extensionProfile renders "ext: n" pairs in extension order, or "unknown".
func extensionProfile(insight *models.FolderInsight) string {
	exts := insight.Extensions()
	if len(exts) == 0 {
		return "unknown"
	}
	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		parts = append(parts, fmt.Sprintf("%s: %d", ext, insight.ExtensionCounts[ext]))
	}
	return strings.Join(parts, ", ")
}

// prioritizedBacklog orders triaged items by priority then ticket order, and
// appends the baseline features.
func prioritizedBacklog(insight *models.FolderInsight, backlog []models.BacklogItem) []string {
	items := append([]models.BacklogItem(nil), backlog...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority.Rank() != items[j].Priority.Rank() {
			return items[i].Priority.Rank() < items[j].Priority.Rank()
		}
		return items[i].Seq < items[j].Seq
	})

	lines := make([]string, 0, len(items)+3)
	for _, item := range items {
		lines = append(lines, item.Line())
	}
	return append(lines, baselineFeatures(insight)...)
}

// baselineFeatures lists the features every plan carries, tailored to the insight.
func baselineFeatures(insight *models.FolderInsight) []string {
	testFeature := "Define a test harness before the first module lands."
	if ext, _, ok := insight.Dominant(); ok {
		testFeature = fmt.Sprintf("Add regression tests covering the dominant `%s` sources.", ext)
	}

	features := []struct {
		tag  string
		text string
	}{
		{"[P1/general]", "Map module boundaries and ownership from the folder scan."},
		{"[P1/testing]", testFeature},
		{"[P2/ux]", "Stream every planning decision into the chat transcript."},
	}

	lines := make([]string, 0, len(features))
	for i, f := range features {
		lines = append(lines, fmt.Sprintf("FEAT-%03d %s %s", i+1, f.tag, f.text))
	}
	return lines
}
