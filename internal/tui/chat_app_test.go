package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/agentbuilder/internal/orchestrator"
	"github.com/ShayCichocki/agentbuilder/internal/scanner"
)

func newTestApp(t *testing.T) *ChatApp {
	t.Helper()
	return NewChatApp(context.Background(), orchestrator.NewSession())
}

// submit sends a chat line and drains any run it starts.
func submit(t *testing.T, app *ChatApp, text string) {
	t.Helper()
	_, cmd := app.Update(MessageSubmittedMsg{Text: text})
	for i := 0; cmd != nil; i++ {
		if i > 100 {
			t.Fatal("run did not finish")
		}
		msg := cmd()
		if _, ok := msg.(stepMsg); !ok {
			return
		}
		_, cmd = app.Update(msg)
	}
}

func lastLine(app *ChatApp) string {
	lines := app.Transcript()
	return lines[len(lines)-1]
}

func TestChatApp_Greets(t *testing.T) {
	app := newTestApp(t)

	if !strings.Contains(lastLine(app), "Session sess-") {
		t.Errorf("greeting = %q", lastLine(app))
	}
	if app.Init() == nil {
		t.Error("Init should focus the input")
	}
}

func TestChatApp_FeedbackIsTriaged(t *testing.T) {
	app := newTestApp(t)

	submit(t, app, "urgent: fix auth bug")
	first := lastLine(app)
	if !strings.Contains(first, "TKT-001") || !strings.Contains(first, "[P0/security]") {
		t.Errorf("first reply = %q", first)
	}

	submit(t, app, "urgent: fix auth bug")
	if !strings.Contains(lastLine(app), "already tracked") {
		t.Errorf("second reply = %q", lastLine(app))
	}

	submit(t, app, "/backlog")
	if got := lastLine(app); got != "builder: TKT-001 [P0/security] urgent: fix auth bug" {
		t.Errorf("backlog reply = %q", got)
	}

	submit(t, app, "/history")
	if n := strings.Count(lastLine(app), "Backlog now contains"); n != 2 {
		t.Errorf("history should list 2 entries, got %d in %q", n, lastLine(app))
	}
}

func TestChatApp_RunStreamsNarration(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.py"), []byte("print(1)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t)

	submit(t, app, "/run "+dir)

	if app.Running() {
		t.Error("run should be finished")
	}
	transcript := strings.Join(app.Transcript(), "\n")
	for _, want := range []string{
		"...: Scanning `" + dir + "`",
		"Creating it now (auto-created, no confirmation required).",
		"Focus on `.py` as the dominant file type (1 file(s))",
		"## Objective",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q", want)
		}
	}

	submit(t, app, "/agents")
	if strings.Contains(lastLine(app), "idle") {
		t.Errorf("all agents should be active after a run: %q", lastLine(app))
	}
}

func TestChatApp_RunInvalidPath(t *testing.T) {
	app := newTestApp(t)

	submit(t, app, "/run "+filepath.Join(t.TempDir(), "missing"))

	if !strings.HasPrefix(lastLine(app), "error: Run failed: invalid folder path") {
		t.Errorf("last line = %q", lastLine(app))
	}
	if app.Running() {
		t.Error("failed run should not stay running")
	}
}

func TestChatApp_RejectsConcurrentRun(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(MessageSubmittedMsg{Text: "/run " + t.TempDir()})
	if cmd == nil || !app.Running() {
		t.Fatal("first run should start")
	}

	app.Update(MessageSubmittedMsg{Text: "/run ."})
	if !strings.Contains(lastLine(app), "already in progress") {
		t.Errorf("last line = %q", lastLine(app))
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if app.Running() {
		t.Error("quitting should stop the run")
	}
}

func TestChatApp_QuitDuringSlowStepDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	session := orchestrator.NewSession(orchestrator.WithFactories(orchestrator.Factories{
		Scanner: func() (orchestrator.Scanner, error) {
			<-release
			return scanner.New(), nil
		},
	}))
	app := NewChatApp(context.Background(), session)

	_, cmd := app.Update(MessageSubmittedMsg{Text: "/run " + t.TempDir()})
	_, cmd = app.Update(cmd())
	if cmd == nil {
		t.Fatal("expected a pull for the second step")
	}

	// The second step waits on the scanner factory.
	pending := make(chan tea.Msg, 1)
	go func() { pending <- cmd() }()

	quit := make(chan struct{})
	go func() {
		app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		close(quit)
	}()
	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("ctrl+c blocked on the in-flight step")
	}
	if app.Running() {
		t.Error("quitting should end the run")
	}

	close(release)
	select {
	case msg := <-pending:
		if msg != nil {
			t.Errorf("ended run delivered %#v, want nothing", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight step never returned after the run ended")
	}
}

func TestChatApp_DropsStepsFromEndedRun(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(MessageSubmittedMsg{Text: "/run " + t.TempDir()})
	stale := cmd()
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	before := len(app.Transcript())

	_, next := app.Update(stale)
	if next != nil {
		t.Error("a step from an ended run should not schedule another pull")
	}
	if len(app.Transcript()) != before {
		t.Errorf("transcript grew from a stale step: %q", lastLine(app))
	}
}

func TestChatApp_UnknownAndHelp(t *testing.T) {
	app := newTestApp(t)

	submit(t, app, "/deploy")
	if !strings.Contains(lastLine(app), "Unknown command /deploy") {
		t.Errorf("last line = %q", lastLine(app))
	}

	submit(t, app, "/help")
	if !strings.Contains(lastLine(app), "/run <path>") {
		t.Errorf("help = %q", lastLine(app))
	}
}

func TestChatApp_Quit(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(MessageSubmittedMsg{Text: "/quit"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if app.View() != "Goodbye!\n" {
		t.Errorf("View() after quit = %q", app.View())
	}
}

func TestChatApp_ViewFitsWindow(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	view := app.View()
	if !strings.Contains(view, "agentbuilder") {
		t.Error("view should include the header")
	}
	if app.inputField.width != 100 {
		t.Errorf("input width = %d, want 100", app.inputField.width)
	}
}
