package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/agentbuilder/internal/orchestrator"
	"github.com/ShayCichocki/agentbuilder/internal/watch"
)

var (
	watchDebounce    time.Duration
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-run the pipeline whenever files change",
	Long: `Run once, then re-run each time files under the path change.

Bursts of changes are debounced into one run. Agents are reused across
runs. Set --metrics-addr (or metrics.addr) to expose /metrics while
watching.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a re-run")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Listen address for /metrics (overrides metrics.addr)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	if watchMetricsAddr != "" {
		rt.cfg.Metrics.Addr = watchMetricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rt.serveMetrics(ctx)

	out := cmd.OutOrStdout()
	reportRun(ctx, out, rt.session, path)

	w, err := watch.New(path, watchDebounce, rt.cfg.Scan.SkipDirs...)
	if err != nil {
		return err
	}
	printStatus(out, "👀", fmt.Sprintf("Watching %s (ctrl+c to stop)", w.Root()), color.FgCyan)

	return w.Run(ctx, func(c watch.Change) {
		printStatus(out, "↻", fmt.Sprintf("%d path(s) changed; re-running", len(c.Paths)), color.FgYellow)
		reportRun(ctx, out, rt.session, path)
	})
}

// reportRun runs once and prints a short summary, or the error.
func reportRun(ctx context.Context, out io.Writer, session *orchestrator.Session, path string) {
	res, err := session.Run(ctx, path)
	if err != nil {
		printStatus(out, "✗", err.Error(), color.FgRed)
		return
	}
	printStatus(out, "✓", res.ProposalTitle, color.FgGreen)
	fmt.Fprintf(out, "  %s\n  %s\n  Newly created agents: %s\n", res.Decision, res.Scope, res.CreatedAgents)
}
