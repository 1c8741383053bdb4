// Package metrics exposes prometheus instrumentation for pipeline runs,
// agent lifecycle, and feedback triage.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes recorded by ObserveRun.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalidPath = "invalid_path"
	OutcomeError       = "error"
)

// Metrics holds the collectors for one process. All methods are safe on a
// nil receiver so instrumentation stays optional.
type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	agents        *prometheus.CounterVec
	feedback      *prometheus.CounterVec
	backlogSize   prometheus.Gauge
	narrationSent prometheus.Counter
}

// New creates collectors registered on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agentbuilder_runs_total",
			Help: "Pipeline runs by outcome",
		}, []string{"outcome"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "agentbuilder_run_duration_seconds",
			Help:    "Wall time of completed pipeline runs",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		agents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agentbuilder_agent_resolutions_total",
			Help: "Agent registry resolutions by role and whether the agent was created",
		}, []string{"role", "created"}),
		feedback: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agentbuilder_feedback_total",
			Help: "Triaged feedback by outcome, priority, and theme",
		}, []string{"outcome", "priority", "theme"}),
		backlogSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "agentbuilder_backlog_items",
			Help: "Unique backlog items in the session",
		}),
		narrationSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "agentbuilder_narration_steps_total",
			Help: "Narration steps delivered to consumers",
		}),
	}
}

// ObserveRun records a finished or failed run.
func (m *Metrics) ObserveRun(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.runDuration.Observe(elapsed.Seconds())
	}
}

// AgentResolved records one registry lookup.
func (m *Metrics) AgentResolved(role string, created bool) {
	if m == nil {
		return
	}
	m.agents.WithLabelValues(role, strconv.FormatBool(created)).Inc()
}

// FeedbackTriaged records one triage call and the resulting backlog size.
func (m *Metrics) FeedbackTriaged(created bool, priority, theme string, backlogSize int) {
	if m == nil {
		return
	}
	outcome := "existing"
	if created {
		outcome = "new"
	}
	m.feedback.WithLabelValues(outcome, priority, theme).Inc()
	m.backlogSize.Set(float64(backlogSize))
}

// NarrationDelivered counts one narration step handed to a consumer.
func (m *Metrics) NarrationDelivered() {
	if m == nil {
		return
	}
	m.narrationSent.Inc()
}

// Registry returns the underlying registry, or nil for a nil Metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics listener on %s: %w", addr, err)
	}
}
