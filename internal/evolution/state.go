// Package evolution holds the session's feedback state and the triage engine
// that turns free-text feedback into a deduplicated, prioritized backlog.
package evolution

import (
	"sort"
	"sync"
	"time"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// State is the in-memory evolution state of one session.
// The feedback and improvement logs are append-only; backlog keys map to
// exactly one ticket for the lifetime of the State.
type State struct {
	mu sync.RWMutex

	feedback []models.LogEntry
	history  []models.LogEntry

	backlog map[string]models.BacklogItem
	// order holds backlog keys in insertion order.
	order   []string
	nextSeq int

	now func() time.Time
}

// StateOption configures a State.
type StateOption func(*State)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StateOption {
	return func(s *State) {
		s.now = now
	}
}

// NewState creates an empty State.
func NewState(opts ...StateOption) *State {
	s := &State{
		backlog: make(map[string]models.BacklogItem),
		nextSeq: 1,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendFeedback records raw feedback text verbatim.
func (s *State) AppendFeedback(text string) models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.LogEntry{Timestamp: s.now().UTC(), Text: text}
	s.feedback = append(s.feedback, entry)
	return entry
}

// AppendImprovement records a suggestion in the improvement history.
func (s *State) AppendImprovement(suggestion string) models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.LogEntry{Timestamp: s.now().UTC(), Text: suggestion}
	s.history = append(s.history, entry)
	return entry
}

// Upsert returns the backlog item for key, inserting it with the next ticket
// when the key is new. created reports whether an insert happened. The
// classification and text of an existing item are never overwritten.
func (s *State) Upsert(key string, priority models.Priority, theme models.Theme, text string) (item models.BacklogItem, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.backlog[key]; ok {
		return existing, false
	}

	item = models.BacklogItem{
		Key:      key,
		Ticket:   models.TicketID(s.nextSeq),
		Seq:      s.nextSeq,
		Priority: priority,
		Theme:    theme,
		Text:     text,
	}
	s.nextSeq++
	s.backlog[key] = item
	s.order = append(s.order, key)
	return item, true
}

// Lookup returns the backlog item stored under key.
func (s *State) Lookup(key string) (models.BacklogItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.backlog[key]
	return item, ok
}

// Len returns the number of unique backlog items.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// FeedbackLog returns a copy of the feedback log in submission order.
func (s *State) FeedbackLog() []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.LogEntry(nil), s.feedback...)
}

// History returns a copy of the improvement log in append order.
func (s *State) History() []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.LogEntry(nil), s.history...)
}

// Backlog returns the backlog items in ticket order.
func (s *State) Backlog() []models.BacklogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.BacklogItem, 0, len(s.order))
	for _, key := range s.order {
		items = append(items, s.backlog[key])
	}
	return items
}

// BacklogSnapshot maps each ticket to its display line.
func (s *State) BacklogSnapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]string, len(s.backlog))
	for _, item := range s.backlog {
		snap[item.Ticket] = item.Line()
	}
	return snap
}

// Prioritized returns the backlog ordered by priority, then ticket order.
func (s *State) Prioritized() []models.BacklogItem {
	items := s.Backlog()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Rank() < items[j].Priority.Rank()
	})
	return items
}
