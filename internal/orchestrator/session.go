package orchestrator

import (
	"context"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/ShayCichocki/agentbuilder/internal/evolution"
	"github.com/ShayCichocki/agentbuilder/internal/metrics"
	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// Session is the context object a front-end holds for one conversation.
// It owns one registry, one evolution state, and the triage engine, and
// every entry point goes through it. Calls must be serialized by the caller.
type Session struct {
	id      string
	builder *Builder
	state   *evolution.State
	engine  *evolution.Engine
	metrics *metrics.Metrics
	logger  *DebugLogger
}

// NewSession creates a session. Unless WithEvolutionState is given, the
// session starts with an empty state that also steers its Builder.
func NewSession(opts ...Option) *Session {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}

	state := o.state
	if state == nil {
		state = evolution.NewState()
		opts = append(opts, WithEvolutionState(state))
	}

	s := &Session{
		id:      fmt.Sprintf("sess-%s", uuid.New().String()[:8]),
		builder: NewBuilder(opts...),
		state:   state,
		engine:  evolution.NewEngine(),
		metrics: o.metrics,
		logger:  o.logger,
	}
	s.logger.Log("[session] %s started", s.id)
	return s
}

// ID returns the session identifier, "sess-" plus eight hex characters.
func (s *Session) ID() string {
	return s.id
}

// Builder returns the session's pipeline.
func (s *Session) Builder() *Builder {
	return s.builder
}

// State returns the session's evolution state.
func (s *Session) State() *evolution.State {
	return s.state
}

// Run executes one pipeline run and returns its result.
func (s *Session) Run(ctx context.Context, path string) (*Result, error) {
	return s.builder.RunOnce(ctx, path)
}

// RunNarrated streams one pipeline run.
func (s *Session) RunNarrated(ctx context.Context, path string) iter.Seq2[Step, error] {
	return s.builder.RunNarrated(ctx, path)
}

// Feedback triages text into the session backlog.
func (s *Session) Feedback(text string) evolution.Outcome {
	out := s.engine.Triage(s.state, text)
	s.metrics.FeedbackTriaged(out.Created, string(out.Item.Priority), string(out.Item.Theme), out.BacklogSize)
	s.logger.Log("[session] %s feedback -> %s (created=%t)", s.id, out.Item.Ticket, out.Created)
	return out
}

// RecordFeedback is Feedback returning only the roadmap suggestion.
func (s *Session) RecordFeedback(text string) string {
	return s.Feedback(text).Suggestion
}

// Agents returns the registry roster.
func (s *Session) Agents() []models.AgentStatus {
	return s.builder.DescribeAgentRegistry()
}
