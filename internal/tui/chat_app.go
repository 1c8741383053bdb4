package tui

import (
	"context"
	"fmt"
	"iter"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/agentbuilder/internal/orchestrator"
)

type speaker int

const (
	speakerUser speaker = iota
	speakerBuilder
	speakerNarration
	speakerError
)

type entry struct {
	from speaker
	text string
}

// ChatApp is the bubbletea model for the chat front-end.
type ChatApp struct {
	ctx        context.Context
	session    *orchestrator.Session
	inputField *InputField
	transcript []entry
	width      int
	height     int
	quitting   bool

	// run is the active narrated run; nil when idle.
	run *runStream
}

// NewChatApp creates a chat bound to session.
func NewChatApp(ctx context.Context, session *orchestrator.Session) *ChatApp {
	a := &ChatApp{
		ctx:        ctx,
		session:    session,
		inputField: NewInputField(),
		width:      80,
		height:     24,
	}
	a.say(speakerBuilder, fmt.Sprintf("Session %s ready. Use /run <path> to plan a folder, or type feedback. /help lists commands.", session.ID()))
	return a
}

// Run starts the chat program and blocks until the user quits.
func Run(ctx context.Context, session *orchestrator.Session) error {
	app := NewChatApp(ctx, session)
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	app.endRun()
	return err
}

// Init implements tea.Model.
func (a *ChatApp) Init() tea.Cmd {
	return a.inputField.Focus()
}

// Running reports whether a narrated run is in progress.
func (a *ChatApp) Running() bool {
	return a.run != nil
}

// Update implements tea.Model.
func (a *ChatApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}
		var cmd tea.Cmd
		a.inputField, cmd = a.inputField.Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.inputField.SetWidth(msg.Width)
		return a, nil

	case MessageSubmittedMsg:
		return a.handleSubmit(msg.Text)

	case stepMsg:
		return a.handleStep(msg)
	}

	return a, nil
}

func (a *ChatApp) handleSubmit(text string) (tea.Model, tea.Cmd) {
	a.say(speakerUser, text)

	cmd := ParseCommand(text)
	switch cmd.Kind {
	case CmdQuit:
		return a.quit()

	case CmdRun:
		if a.Running() {
			a.say(speakerError, "A run is already in progress; wait for it to finish.")
			return a, nil
		}
		path := cmd.Arg
		if path == "" {
			path = "."
		}
		a.run = startStream(a.ctx, func(ctx context.Context) iter.Seq2[orchestrator.Step, error] {
			return a.session.RunNarrated(ctx, path)
		})
		return a, a.run.pull()

	case CmdAgents:
		var lines []string
		for _, s := range a.session.Agents() {
			lines = append(lines, fmt.Sprintf("%s: %s (%s)", s.Name, s.State(), s.Description))
		}
		a.say(speakerBuilder, strings.Join(lines, "\n"))

	case CmdBacklog:
		items := a.session.State().Prioritized()
		if len(items) == 0 {
			a.say(speakerBuilder, "Backlog is empty.")
			break
		}
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, item.Line())
		}
		a.say(speakerBuilder, strings.Join(lines, "\n"))

	case CmdHistory:
		history := a.session.State().History()
		if len(history) == 0 {
			a.say(speakerBuilder, "No evolution steps yet.")
			break
		}
		lines := make([]string, 0, len(history))
		for _, h := range history {
			lines = append(lines, h.String())
		}
		a.say(speakerBuilder, strings.Join(lines, "\n"))

	case CmdHelp:
		a.say(speakerBuilder, helpText)

	case CmdUnknown:
		a.say(speakerError, fmt.Sprintf("Unknown command %s. Type /help for the list.", cmd.Arg))

	default:
		suggestion := a.session.RecordFeedback(cmd.Arg)
		a.say(speakerBuilder, "Captured feedback and updated evolution log.\n"+suggestion)
	}

	return a, nil
}

func (a *ChatApp) handleStep(msg stepMsg) (tea.Model, tea.Cmd) {
	// Steps from a run that already ended are dropped.
	if msg.run == nil || msg.run != a.run {
		return a, nil
	}

	switch {
	case !msg.ok:
		a.endRun()
	case msg.err != nil:
		a.say(speakerError, "Run failed: "+msg.err.Error())
		a.endRun()
	case msg.step.Kind == orchestrator.StepDone:
		a.say(speakerBuilder, renderResult(msg.step.Result))
		a.endRun()
	default:
		a.say(speakerNarration, msg.step.Text)
		return a, a.run.pull()
	}
	return a, nil
}

// endRun cancels the active run, if any. It never waits for an in-flight step.
func (a *ChatApp) endRun() {
	if a.run != nil {
		a.run.end()
	}
	a.run = nil
}

func (a *ChatApp) quit() (tea.Model, tea.Cmd) {
	a.endRun()
	a.quitting = true
	return a, tea.Quit
}

func (a *ChatApp) say(from speaker, text string) {
	a.transcript = append(a.transcript, entry{from: from, text: text})
}

// Transcript returns the conversation as plain "speaker: text" lines.
func (a *ChatApp) Transcript() []string {
	out := make([]string, 0, len(a.transcript))
	for _, e := range a.transcript {
		out = append(out, speakerLabel(e.from)+": "+e.text)
	}
	return out
}

func renderResult(res *orchestrator.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", res.Title, res.Summary)
	fmt.Fprintf(&b, "Decision: %s\n", res.Decision)
	fmt.Fprintf(&b, "Scope: %s\n", res.Scope)
	fmt.Fprintf(&b, "Newly created agents: %s\n\n", res.CreatedAgents)
	b.WriteString(res.Transcript())
	fmt.Fprintf(&b, "\n\nProposal: %s\n\n%s", res.ProposalTitle, res.ProposalBody)
	return b.String()
}

func speakerLabel(s speaker) string {
	switch s {
	case speakerUser:
		return "you"
	case speakerNarration:
		return "..."
	case speakerError:
		return "error"
	default:
		return "builder"
	}
}

// View implements tea.Model.
func (a *ChatApp) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	header := headerStyle.Width(a.width).Render("agentbuilder  " + a.session.ID())
	input := a.inputField.View()

	status := "enter: send  /help: commands  ctrl+c: quit"
	if a.Running() {
		status = "running... " + status
	}
	footer := footerStyle.Render(status)

	// header, input box (3 lines), footer
	bodyHeight := a.height - 1 - 3 - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, a.renderTranscript(bodyHeight), input, footer)
}

// renderTranscript shows the newest lines that fit in height.
func (a *ChatApp) renderTranscript(height int) string {
	var lines []string
	for _, e := range a.transcript {
		for i, line := range strings.Split(e.text, "\n") {
			prefix := "  "
			if i == 0 {
				prefix = styleFor(e.from).Render(speakerLabel(e.from)) + " "
			}
			if e.from == speakerNarration {
				line = narrationStyle.Render(line)
			}
			lines = append(lines, prefix+line)
		}
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(a.width).Render(strings.Join(lines, "\n"))
}

func styleFor(s speaker) lipgloss.Style {
	switch s {
	case speakerUser:
		return userStyle
	case speakerNarration:
		return narrationStyle
	case speakerError:
		return errorStyle
	default:
		return builderStyle
	}
}
