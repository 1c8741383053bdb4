package evolution

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestRecordFeedback_ClassifiesPriorityAndTheme(t *testing.T) {
	state := NewState()
	engine := NewEngine()

	suggestion := engine.RecordFeedback(state, "Critical security policy checks are missing")

	for _, want := range []string{"TKT-001", "[P0/security]", "Backlog now contains 1 unique item(s)"} {
		if !strings.Contains(suggestion, want) {
			t.Errorf("suggestion %q missing %q", suggestion, want)
		}
	}
	if !strings.HasPrefix(suggestion, "Promote latest feedback into roadmap: ") {
		t.Errorf("new item suggestion has wrong prefix: %q", suggestion)
	}
	if state.Len() != 1 {
		t.Errorf("backlog size = %d, want 1", state.Len())
	}
}

func TestRecordFeedback_DeduplicatesRepeatedFeedback(t *testing.T) {
	state := NewState()
	engine := NewEngine()

	first := engine.RecordFeedback(state, "Improve chat UX response formatting")
	second := engine.RecordFeedback(state, "  improve   CHAT ux\tresponse formatting \n")

	if !strings.Contains(first, "Backlog now contains 1 unique item(s)") {
		t.Errorf("first suggestion = %q", first)
	}
	if !strings.Contains(second, "already tracked") {
		t.Errorf("second suggestion should mention already tracked: %q", second)
	}
	if !strings.Contains(second, "TKT-001") {
		t.Errorf("second suggestion should reuse TKT-001: %q", second)
	}
	if state.Len() != 1 {
		t.Errorf("backlog size = %d, want 1", state.Len())
	}
	if got := len(state.History()); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
	if got := len(state.FeedbackLog()); got != 2 {
		t.Errorf("feedback log length = %d, want 2", got)
	}
}

func TestRecordFeedback_TicketMonotonicity(t *testing.T) {
	state := NewState()
	engine := NewEngine()

	texts := []string{"first idea", "second idea", "third idea", "fourth idea"}
	for i, text := range texts {
		out := engine.Triage(state, text)
		want := fmt.Sprintf("TKT-%03d", i+1)
		if out.Item.Ticket != want {
			t.Errorf("ticket for %q = %q, want %q", text, out.Item.Ticket, want)
		}
		if !out.Created {
			t.Errorf("%q should create a new item", text)
		}
	}

	again := engine.Triage(state, "SECOND idea")
	if again.Created {
		t.Error("resubmission should not create a new item")
	}
	if again.Item.Ticket != "TKT-002" {
		t.Errorf("resubmitted ticket = %q, want TKT-002", again.Item.Ticket)
	}

	next := engine.Triage(state, "fifth idea")
	if next.Item.Ticket != "TKT-005" {
		t.Errorf("next ticket after resubmission = %q, want TKT-005", next.Item.Ticket)
	}
}

func TestRecordFeedback_EmptyText(t *testing.T) {
	state := NewState(WithClock(fixedClock()))
	engine := NewEngine()

	suggestion := engine.RecordFeedback(state, "   ")

	if !strings.Contains(suggestion, EmptyFeedbackPlaceholder) {
		t.Errorf("suggestion %q should carry the placeholder", suggestion)
	}
	if !strings.Contains(suggestion, "[P2/general]") {
		t.Errorf("suggestion %q should be [P2/general]", suggestion)
	}

	log := state.FeedbackLog()
	if len(log) != 1 || log[0].Text != "   " {
		t.Errorf("raw text should be logged verbatim, got %+v", log)
	}

	engine.RecordFeedback(state, "")
	if state.Len() != 1 {
		t.Errorf("blank submissions should share one item, backlog size = %d", state.Len())
	}
}

func TestRecordFeedback_ExistingKeepsOriginalClassification(t *testing.T) {
	state := NewState()
	engine := NewEngine()

	engine.RecordFeedback(state, "Fix login")
	out := engine.Triage(state, "fix LOGIN")

	if out.Item.Text != "Fix login" {
		t.Errorf("display text = %q, want first submission's text", out.Item.Text)
	}
	if !strings.HasPrefix(out.Suggestion, "Feedback already tracked; escalating visibility in roadmap: TKT-001 [P2/general] Fix login") {
		t.Errorf("unexpected suggestion: %q", out.Suggestion)
	}
}

func TestRecordFeedback_Scenario(t *testing.T) {
	state := NewState()
	engine := NewEngine()

	first := engine.RecordFeedback(state, "urgent: fix auth bug")
	if !strings.Contains(first, "TKT-001") || !strings.Contains(first, "[P0/security]") {
		t.Errorf("first suggestion = %q", first)
	}

	second := engine.RecordFeedback(state, "urgent: fix auth bug")
	if !strings.Contains(second, "already tracked") {
		t.Errorf("second suggestion = %q", second)
	}
	if state.Len() != 1 {
		t.Errorf("backlog size = %d, want 1", state.Len())
	}
}

func TestState_LogsAreTimestamped(t *testing.T) {
	state := NewState(WithClock(fixedClock()))
	NewEngine().RecordFeedback(state, "note")

	hist := state.History()
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	if !strings.HasPrefix(hist[0].String(), "[2025-01-02T03:04:05Z] Promote latest feedback") {
		t.Errorf("history entry = %q", hist[0].String())
	}
	if hist[0].Timestamp.Location() != time.UTC {
		t.Error("timestamps should be UTC")
	}
}

func TestState_Snapshots(t *testing.T) {
	state := NewState()
	engine := NewEngine()
	engine.RecordFeedback(state, "nice to have later")
	engine.RecordFeedback(state, "urgent crash on save")
	engine.RecordFeedback(state, "important: add tests")

	snap := state.BacklogSnapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot size = %d, want 3", len(snap))
	}
	if snap["TKT-002"] != "TKT-002 [P0/general] urgent crash on save" {
		t.Errorf("snapshot TKT-002 = %q", snap["TKT-002"])
	}

	ordered := state.Backlog()
	for i, item := range ordered {
		if item.Seq != i+1 {
			t.Errorf("Backlog()[%d].Seq = %d, want %d", i, item.Seq, i+1)
		}
	}

	prio := state.Prioritized()
	wantOrder := []string{"TKT-002", "TKT-003", "TKT-001"}
	for i, want := range wantOrder {
		if prio[i].Ticket != want {
			t.Errorf("Prioritized()[%d] = %s, want %s", i, prio[i].Ticket, want)
		}
	}
	if prio[0].Priority != models.PriorityP0 {
		t.Errorf("first prioritized item should be P0, got %s", prio[0].Priority)
	}
}

func TestState_CopiesAreIndependent(t *testing.T) {
	state := NewState()
	NewEngine().RecordFeedback(state, "one")

	log := state.FeedbackLog()
	log[0].Text = "mutated"

	if state.FeedbackLog()[0].Text != "one" {
		t.Error("FeedbackLog should return a copy")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello world"},
		{"  Hello \t\n  World  ", "hello world"},
		{"", ""},
		{"ALREADY normal", "already normal"},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
