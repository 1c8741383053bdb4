package planner

import (
	"strings"
	"testing"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

func TestBuild_TitleAndSummary(t *testing.T) {
	insight := &models.FolderInsight{
		Root:            "/work/shop",
		FileCount:       3,
		ExtensionCounts: map[string]int{".py": 2, ".md": 1},
	}

	bp := New().Build(insight, nil)

	if bp.Title != "Agentic Builder for shop" {
		t.Errorf("Title = %q, want %q", bp.Title, "Agentic Builder for shop")
	}
	if !strings.Contains(bp.Summary, "Scanned `shop` with 3 files.") {
		t.Errorf("Summary missing scan sentence: %q", bp.Summary)
	}
	if !strings.Contains(bp.Summary, "Detected extension profile: .md: 1, .py: 2.") {
		t.Errorf("Summary missing ordered extension profile: %q", bp.Summary)
	}
	if len(bp.Capabilities) != 4 || len(bp.Architecture) != 4 || len(bp.Tests) != 3 {
		t.Errorf("unexpected list sizes: %d capabilities, %d architecture, %d tests",
			len(bp.Capabilities), len(bp.Architecture), len(bp.Tests))
	}
}

func TestBuild_EmptyFolderProfile(t *testing.T) {
	bp := New().Build(&models.FolderInsight{Root: "/tmp/empty", ExtensionCounts: map[string]int{}}, nil)

	if !strings.Contains(bp.Summary, "Detected extension profile: unknown.") {
		t.Errorf("Summary = %q, want unknown profile", bp.Summary)
	}
	if !strings.Contains(bp.Backlog[1], "Define a test harness") {
		t.Errorf("empty folder should get harness feature, got %q", bp.Backlog[1])
	}
}

func TestBuild_BacklogPrioritized(t *testing.T) {
	insight := &models.FolderInsight{Root: "/x/app", FileCount: 1, ExtensionCounts: map[string]int{".ts": 1}}
	backlog := []models.BacklogItem{
		{Ticket: "TKT-001", Seq: 1, Priority: models.PriorityP2, Theme: models.ThemeGeneral, Text: "nice to have"},
		{Ticket: "TKT-002", Seq: 2, Priority: models.PriorityP0, Theme: models.ThemeSecurity, Text: "urgent auth"},
		{Ticket: "TKT-003", Seq: 3, Priority: models.PriorityP2, Theme: models.ThemeUX, Text: "chat colors"},
		{Ticket: "TKT-004", Seq: 4, Priority: models.PriorityP1, Theme: models.ThemeTesting, Text: "must test"},
	}

	bp := New().Build(insight, backlog)

	wantPrefixes := []string{"TKT-002", "TKT-004", "TKT-001", "TKT-003", "FEAT-001", "FEAT-002", "FEAT-003"}
	if len(bp.Backlog) != len(wantPrefixes) {
		t.Fatalf("len(Backlog) = %d, want %d: %v", len(bp.Backlog), len(wantPrefixes), bp.Backlog)
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(bp.Backlog[i], want) {
			t.Errorf("Backlog[%d] = %q, want prefix %q", i, bp.Backlog[i], want)
		}
	}
	if !strings.Contains(bp.Backlog[5], "`.ts`") {
		t.Errorf("test feature should cite dominant extension, got %q", bp.Backlog[5])
	}

	// The caller's slice must not be reordered.
	if backlog[0].Ticket != "TKT-001" {
		t.Error("Build mutated the input backlog order")
	}
}
