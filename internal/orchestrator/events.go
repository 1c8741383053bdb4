package orchestrator

import "strings"

// StepKind tags an element of a narrated run.
type StepKind string

const (
	// StepProgress carries a narration line.
	StepProgress StepKind = "progress"
	// StepDone carries the final Result and ends the stream.
	StepDone StepKind = "done"
)

// Step is one element of a narrated run.
type Step struct {
	Kind StepKind
	// Text is set for StepProgress.
	Text string
	// Result is set for StepDone.
	Result *Result
}

// Chat log category tags.
const (
	GlyphPlan     = "🧭"
	GlyphAgent    = "🤖"
	GlyphScan     = "🔎"
	GlyphDecision = "🎯"
	GlyphDraft    = "📝"
	GlyphDone     = "✅"
)

// Result is the terminal payload of a run.
type Result struct {
	Title         string   `json:"title" yaml:"title"`
	Summary       string   `json:"summary" yaml:"summary"`
	ProposalTitle string   `json:"proposal_title" yaml:"proposal_title"`
	ProposalBody  string   `json:"proposal_body" yaml:"proposal_body"`
	Decision      string   `json:"decision" yaml:"decision"`
	Scope         string   `json:"scope" yaml:"scope"`
	CreatedAgents string   `json:"created_agents" yaml:"created_agents"`
	ChatLog       []string `json:"chat_log" yaml:"chat_log"`
}

// Transcript joins the chat log one line per event.
func (r *Result) Transcript() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.ChatLog, "\n")
}
