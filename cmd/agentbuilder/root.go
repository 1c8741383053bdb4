package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/agentbuilder/internal/tui"
)

var (
	flagConfigPath string
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "agentbuilder",
	Short: "Chat-first planner that turns a folder into a change proposal",
	Long: `agentbuilder scans a project folder, narrates how it plans the work,
and drafts a pull-request style proposal. Feedback you give is triaged
into a prioritized backlog that shapes the next proposal.

With no arguments on a terminal, opens the interactive chat. Inside the
chat, /run <path> streams a run and plain text is recorded as feedback.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return cmd.Help()
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rt.serveMetrics(ctx)
		return tui.Run(ctx, rt.session)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default: user and project config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug lines to stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
