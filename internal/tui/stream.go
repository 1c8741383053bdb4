package tui

import (
	"context"
	"iter"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/agentbuilder/internal/orchestrator"
)

// stepMsg carries one pulled element of a narrated run.
type stepMsg struct {
	run  *runStream
	step orchestrator.Step
	err  error
	ok   bool
}

// runStream pulls one narrated run a step at a time.
//
// next and stop are never called at the same time: at most one pull is
// outstanding, and stop runs either on the Update goroutine while no pull is
// in flight or on the pulling goroutine right after next returns.
type runStream struct {
	next   func() (orchestrator.Step, error, bool)
	stop   func()
	cancel context.CancelFunc

	mu      sync.Mutex
	pulling bool
	ended   bool
}

// startStream begins a run bound to its own cancellable context.
func startStream(ctx context.Context, start func(context.Context) iter.Seq2[orchestrator.Step, error]) *runStream {
	runCtx, cancel := context.WithCancel(ctx)
	next, stop := iter.Pull2(start(runCtx))
	return &runStream{next: next, stop: stop, cancel: cancel}
}

// pull returns a command that fetches the next step. If the run ended while
// the step was in flight, the command releases the stream and delivers nothing.
func (r *runStream) pull() tea.Cmd {
	r.mu.Lock()
	r.pulling = true
	r.mu.Unlock()

	return func() tea.Msg {
		step, err, ok := r.next()

		r.mu.Lock()
		r.pulling = false
		ended := r.ended
		r.mu.Unlock()

		if ended {
			r.stop()
			return nil
		}
		return stepMsg{run: r, step: step, err: err, ok: ok}
	}
}

// end cancels the run without waiting for an in-flight step.
func (r *runStream) end() {
	r.cancel()

	r.mu.Lock()
	if r.ended {
		r.mu.Unlock()
		return
	}
	r.ended = true
	idle := !r.pulling
	r.mu.Unlock()

	if idle {
		r.stop()
	}
}
