package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/ShayCichocki/agentbuilder/internal/evolution"
	"github.com/ShayCichocki/agentbuilder/internal/metrics"
	"github.com/ShayCichocki/agentbuilder/internal/scanner"
	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

var (
	// ErrInvalidPath is returned when the run target is missing or not a directory.
	ErrInvalidPath = scanner.ErrInvalidPath
	// ErrNoResult is returned when a narrated run ends without a Done step.
	ErrNoResult = errors.New("narrated run ended without a result")
)

// errStopped signals that the consumer stopped pulling steps.
var errStopped = errors.New("narration consumer stopped")

// Builder drives the scanner, planner, and pr_manager agents through one
// narrated run per call. Agents live in the registry and survive across runs.
type Builder struct {
	registry  *AgentRegistry
	state     *evolution.State
	metrics   *metrics.Metrics
	logger    *DebugLogger
	topGroups int
	topFiles  int
}

// NewBuilder creates a Builder with its own registry unless WithRegistry is given.
func NewBuilder(opts ...Option) *Builder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := o.registry
	if reg == nil {
		reg = NewAgentRegistry(o.factories.merge(DefaultFactories(o.skipDirs, o.amendmentSlice)))
	}
	if o.logger != nil {
		setPackageLogger(o.logger)
	}

	return &Builder{
		registry:  reg,
		state:     o.state,
		metrics:   o.metrics,
		logger:    o.logger,
		topGroups: o.topGroups,
		topFiles:  o.topFiles,
	}
}

// Registry returns the Builder's agent registry.
func (b *Builder) Registry() *AgentRegistry {
	return b.registry
}

// DescribeAgentRegistry returns the roster for every known role.
func (b *Builder) DescribeAgentRegistry() []models.AgentStatus {
	return b.registry.Describe()
}

// RunNarrated returns a lazy stream of one run against path. Each call
// starts a fresh run. Progress steps are followed by exactly one Done step,
// or by a single error. Side effects already applied stay applied when the
// consumer stops early.
func (b *Builder) RunNarrated(ctx context.Context, path string) iter.Seq2[Step, error] {
	return func(yield func(Step, error) bool) {
		start := time.Now()
		n := &narration{yield: yield, metrics: b.metrics}

		result, err := b.run(ctx, path, n)
		switch {
		case errors.Is(err, errStopped):
			b.logger.Log("[builder] consumer left run on %s early", path)
			return
		case err != nil:
			outcome := metrics.OutcomeError
			if errors.Is(err, ErrInvalidPath) {
				outcome = metrics.OutcomeInvalidPath
			}
			b.metrics.ObserveRun(outcome, time.Since(start))
			b.logger.Log("[builder] run on %s failed: %v", path, err)
			yield(Step{}, err)
			return
		}

		b.metrics.ObserveRun(metrics.OutcomeSuccess, time.Since(start))
		b.logger.Log("[builder] run on %s finished in %s", path, time.Since(start))
		yield(Step{Kind: StepDone, Result: result}, nil)
	}
}

// RunOnce drains a narrated run and returns its result.
func (b *Builder) RunOnce(ctx context.Context, path string) (*Result, error) {
	return drain(b.RunNarrated(ctx, path))
}

func drain(steps iter.Seq2[Step, error]) (*Result, error) {
	for step, err := range steps {
		if err != nil {
			return nil, err
		}
		if step.Kind == StepDone {
			return step.Result, nil
		}
	}
	return nil, ErrNoResult
}

func (b *Builder) run(ctx context.Context, path string, n *narration) (*Result, error) {
	before := b.registry.Active()

	n.record(GlyphPlan, fmt.Sprintf("Plan for `%s`: resolve agents, scan, summarize scope, choose a focus, draft the proposal.", path))
	if err := n.say(ctx, fmt.Sprintf("Preparing the %s, %s, and %s agents before looking at `%s`.",
		models.RoleScanner, models.RolePlanner, models.RolePRManager, path)); err != nil {
		return nil, err
	}

	scan, ev, err := b.registry.Scanner()
	if err := b.announce(ctx, n, ev, err); err != nil {
		return nil, err
	}
	plan, ev, err := b.registry.Planner()
	if err := b.announce(ctx, n, ev, err); err != nil {
		return nil, err
	}
	draft, ev, err := b.registry.PRManager()
	if err := b.announce(ctx, n, ev, err); err != nil {
		return nil, err
	}

	if err := n.say(ctx, fmt.Sprintf("Scanning `%s` to inventory files and extensions.", path)); err != nil {
		return nil, err
	}
	insight, err := scan.Scan(path)
	if err != nil {
		return nil, err
	}
	n.record(GlyphScan, fmt.Sprintf("Scanned `%s`: %d file(s) across %d extension(s).",
		insight.Root, insight.FileCount, len(insight.ExtensionCounts)))

	if err := n.say(ctx, "Summarizing the inspection scope: busiest top-level folders and largest files."); err != nil {
		return nil, err
	}
	scope := ComputeScope(insight, b.topGroups, b.topFiles)
	n.record(GlyphScan, "Inspection scope. "+scope.String()+".")

	if err := n.say(ctx, "Choosing a focus from the extension profile."); err != nil {
		return nil, err
	}
	decision := FocusDecision(insight)
	n.record(GlyphDecision, decision)

	if err := n.say(ctx, "Drafting the blueprint and the change proposal."); err != nil {
		return nil, err
	}
	var backlog []models.BacklogItem
	if b.state != nil {
		backlog = b.state.Prioritized()
	}
	bp := plan.Build(insight, backlog)
	prop := draft.Draft(bp)
	n.record(GlyphDraft, fmt.Sprintf("Drafted proposal `%s` with %d backlog item(s).", prop.Title, len(bp.Backlog)))

	created := createdSince(before, b.registry.Active())
	n.record(GlyphDone, "Run complete. Newly created agents: "+created+".")

	return &Result{
		Title:         bp.Title,
		Summary:       bp.Summary,
		ProposalTitle: prop.Title,
		ProposalBody:  prop.Body,
		Decision:      decision,
		Scope:         scope.String(),
		CreatedAgents: created,
		ChatLog:       n.chatLog,
	}, nil
}

// announce narrates one registry resolution.
func (b *Builder) announce(ctx context.Context, n *narration, ev AgentEvent, err error) error {
	if err != nil {
		return err
	}
	b.metrics.AgentResolved(string(ev.Role), ev.Created)
	n.record(GlyphAgent, ev.Message)
	return n.say(ctx, ev.Message)
}

// createdSince lists roles present in after but not before, sorted and
// comma-joined, or "none".
func createdSince(before, after []models.AgentRole) string {
	seen := make(map[models.AgentRole]bool, len(before))
	for _, r := range before {
		seen[r] = true
	}
	var created []string
	for _, r := range after {
		if !seen[r] {
			created = append(created, string(r))
		}
	}
	if len(created) == 0 {
		return "none"
	}
	return strings.Join(created, ", ")
}

// narration forwards progress lines to the consumer and accumulates the
// chat log for the final result.
type narration struct {
	yield   func(Step, error) bool
	metrics *metrics.Metrics
	chatLog []string
}

func (n *narration) say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.metrics.NarrationDelivered()
	if !n.yield(Step{Kind: StepProgress, Text: text}, nil) {
		return errStopped
	}
	return nil
}

func (n *narration) record(glyph, line string) {
	n.chatLog = append(n.chatLog, glyph+" "+line)
}
