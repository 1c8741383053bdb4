package evolution

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// EmptyFeedbackPlaceholder is displayed when the submitted text is blank.
const EmptyFeedbackPlaceholder = "No feedback text provided."

// Outcome describes what one triage call did to the backlog.
type Outcome struct {
	// Item is the backlog entry the feedback resolved to.
	Item models.BacklogItem
	// Created is false when the feedback matched an existing key.
	Created bool
	// Classification is the classification of this submission, which may
	// differ from Item's when the key already existed.
	Classification Classification
	// BacklogSize is the number of unique items after the upsert.
	BacklogSize int
	// Suggestion is the line appended to the improvement log.
	Suggestion string
}

// Engine triages feedback into an evolution State. It holds no state of its
// own; every call operates on the State passed in.
type Engine struct{}

// NewEngine creates a triage Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// RecordFeedback triages text into state and returns the roadmap suggestion.
// Any text is accepted, including empty or whitespace-only input.
func (e *Engine) RecordFeedback(state *State, text string) string {
	return e.Triage(state, text).Suggestion
}

// Triage is RecordFeedback with the full outcome exposed.
func (e *Engine) Triage(state *State, text string) Outcome {
	state.AppendFeedback(text)

	display := strings.TrimSpace(text)
	if display == "" {
		display = EmptyFeedbackPlaceholder
	}

	class := Classify(display)
	item, created := state.Upsert(NormalizeKey(display), class.Priority, class.Theme, display)
	size := state.Len()

	var suggestion string
	if created {
		suggestion = "Promote latest feedback into roadmap: " + item.Line()
	} else {
		suggestion = "Feedback already tracked; escalating visibility in roadmap: " + item.Line()
	}
	suggestion += fmt.Sprintf(", Backlog now contains %d unique item(s).", size)

	state.AppendImprovement(suggestion)

	return Outcome{
		Item:           item,
		Created:        created,
		Classification: class,
		BacklogSize:    size,
		Suggestion:     suggestion,
	}
}

// NormalizeKey collapses whitespace runs, trims, and lower-cases text.
// Feedback differing only in case or spacing shares one key.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
