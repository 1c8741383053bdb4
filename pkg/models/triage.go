package models

import (
	"fmt"
	"time"
)

// Theme is the subject area a piece of feedback is classified into.
type Theme string

const (
	ThemeSecurity    Theme = "security"
	ThemePerformance Theme = "performance"
	ThemeTesting     Theme = "testing"
	ThemeUX          Theme = "ux"
	// ThemeGeneral is assigned when no theme keyword matches.
	ThemeGeneral Theme = "general"
)

// Valid returns true if the theme is a known value.
func (t Theme) Valid() bool {
	switch t {
	case ThemeSecurity, ThemePerformance, ThemeTesting, ThemeUX, ThemeGeneral:
		return true
	default:
		return false
	}
}

// Priority is the urgency tier assigned to a piece of feedback.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	// PriorityP2 is assigned when no priority keyword matches.
	PriorityP2 Priority = "P2"
)

// Valid returns true if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityP0, PriorityP1, PriorityP2:
		return true
	default:
		return false
	}
}

// Rank orders priorities so that P0 sorts first.
// Unknown priorities rank after P2.
func (p Priority) Rank() int {
	switch p {
	case PriorityP0:
		return 0
	case PriorityP1:
		return 1
	case PriorityP2:
		return 2
	default:
		return 3
	}
}

// BacklogItem is a deduplicated, triaged feedback entry.
type BacklogItem struct {
	// Key is the normalized feedback text and the backlog identity.
	Key string `json:"key" yaml:"key"`
	// Ticket is assigned once, at first insertion, as TKT-NNN.
	Ticket string `json:"ticket" yaml:"ticket"`
	// Seq is the 1-based insertion order the ticket was derived from.
	Seq      int      `json:"seq" yaml:"seq"`
	Priority Priority `json:"priority" yaml:"priority"`
	Theme    Theme    `json:"theme" yaml:"theme"`
	// Text is the display text of the first submission.
	Text string `json:"text" yaml:"text"`
}

// TicketPrefix starts every feedback ticket identifier.
const TicketPrefix = "TKT-"

// TicketID formats the ticket identifier for a 1-based insertion order.
func TicketID(seq int) string {
	return fmt.Sprintf("%s%03d", TicketPrefix, seq)
}

// Tag renders the classification as [priority/theme].
func (b BacklogItem) Tag() string {
	return fmt.Sprintf("[%s/%s]", b.Priority, b.Theme)
}

// Line renders the backlog line shown in suggestions and proposals.
func (b BacklogItem) Line() string {
	return fmt.Sprintf("%s %s %s", b.Ticket, b.Tag(), b.Text)
}

// LogEntry is a timestamped, append-only log record.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Text      string    `json:"text" yaml:"text"`
}

// String renders the entry as "[timestamp] text".
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp.UTC().Format(time.RFC3339Nano), e.Text)
}
