package orchestrator

import (
	"github.com/ShayCichocki/agentbuilder/internal/config"
	"github.com/ShayCichocki/agentbuilder/internal/evolution"
	"github.com/ShayCichocki/agentbuilder/internal/metrics"
	"github.com/ShayCichocki/agentbuilder/internal/proposal"
)

// Defaults for the inspection scope summary.
const (
	DefaultTopGroups = 5
	DefaultTopFiles  = 3
)

// builderOptions holds optional configuration for a Builder.
type builderOptions struct {
	factories      Factories
	registry       *AgentRegistry
	skipDirs       []string
	amendmentSlice int
	topGroups      int
	topFiles       int
	state          *evolution.State
	metrics        *metrics.Metrics
	logger         *DebugLogger
}

// Option is a functional option for configuring a Builder.
type Option func(*builderOptions)

// WithFactories overrides role constructors. Nil fields keep the defaults.
func WithFactories(f Factories) Option {
	return func(o *builderOptions) {
		o.factories = f
	}
}

// WithRegistry makes the Builder share an existing registry.
// Factories passed with WithFactories are ignored when this is set.
func WithRegistry(r *AgentRegistry) Option {
	return func(o *builderOptions) {
		o.registry = r
	}
}

// WithSkipDirs sets the directory names the default scanner never enters.
func WithSkipDirs(dirs ...string) Option {
	return func(o *builderOptions) {
		o.skipDirs = dirs
	}
}

// WithAmendmentSlice sets how many backlog lines the proposal carries per PR.
func WithAmendmentSlice(n int) Option {
	return func(o *builderOptions) {
		o.amendmentSlice = n
	}
}

// WithScopeLimits sets how many groups and files the scope summary lists.
// Non-positive values keep the defaults.
func WithScopeLimits(groups, files int) Option {
	return func(o *builderOptions) {
		if groups > 0 {
			o.topGroups = groups
		}
		if files > 0 {
			o.topFiles = files
		}
	}
}

// WithEvolutionState feeds the state's backlog into every plan.
func WithEvolutionState(s *evolution.State) Option {
	return func(o *builderOptions) {
		o.state = s
	}
}

// WithMetrics records runs and agent resolutions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *builderOptions) {
		o.metrics = m
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *builderOptions) {
		o.logger = l
	}
}

// WithConfig applies the scan, scope, and proposal sections of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(o *builderOptions) {
		if cfg == nil {
			return
		}
		o.skipDirs = cfg.Scan.SkipDirs
		o.amendmentSlice = cfg.Proposal.AmendmentSlice
		WithScopeLimits(cfg.Scope.TopGroups, cfg.Scope.TopFiles)(o)
	}
}

func defaultBuilderOptions() builderOptions {
	return builderOptions{
		skipDirs:       config.Default().Scan.SkipDirs,
		amendmentSlice: proposal.DefaultAmendmentSlice,
		topGroups:      DefaultTopGroups,
		topFiles:       DefaultTopFiles,
	}
}
