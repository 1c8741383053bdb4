package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/agentbuilder/internal/orchestrator"
)

var (
	runStream bool
	runFormat string
)

var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "Scan a folder and draft a proposal",
	Long: `Scan a folder, choose a focus, and draft a change proposal.

With --stream, narration is printed as each phase starts. The path
defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runStream, "stream", false, "Print narration while the run progresses")
	runCmd.Flags().StringVar(&runFormat, "format", "", "Output format: text or yaml (default from config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	format, err := resolveFormat(runFormat, rt.cfg.Output.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runPipeline(ctx, cmd, rt.session, path, runStream)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), res, format)
}

// runPipeline drives one run, echoing narration to stderr when stream is set.
func runPipeline(ctx context.Context, cmd *cobra.Command, session *orchestrator.Session, path string, stream bool) (*orchestrator.Result, error) {
	if !stream {
		return session.Run(ctx, path)
	}

	faint := color.New(color.Faint)
	for step, err := range session.RunNarrated(ctx, path) {
		if err != nil {
			return nil, err
		}
		switch step.Kind {
		case orchestrator.StepProgress:
			fmt.Fprintln(cmd.ErrOrStderr(), faint.Sprint("… "+step.Text))
		case orchestrator.StepDone:
			return step.Result, nil
		}
	}
	return nil, orchestrator.ErrNoResult
}
