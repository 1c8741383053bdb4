package main

import (
	"github.com/spf13/cobra"
)

var (
	feedbackFormat      string
	feedbackShowHistory bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <text>...",
	Short: "Triage feedback into the backlog",
	Long: `Record one or more pieces of feedback in a single session.

Each argument is triaged on its own: classified by theme and priority,
deduplicated, and given a TKT ticket. The suggestions and the resulting
prioritized backlog are printed.`,
	Example: `  agentbuilder feedback "urgent: fix auth bug" "add regression tests"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackFormat, "format", "", "Output format: text or yaml (default from config)")
	feedbackCmd.Flags().BoolVar(&feedbackShowHistory, "history", false, "Also print the evolution log")
}

func runFeedback(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	format, err := resolveFormat(feedbackFormat, rt.cfg.Output.Format)
	if err != nil {
		return err
	}

	suggestions := make([]string, 0, len(args))
	for _, text := range args {
		suggestions = append(suggestions, rt.session.RecordFeedback(text))
	}

	state := rt.session.State()
	report := newBacklogReport(suggestions, state.Prioritized(), nil)
	if feedbackShowHistory {
		report = newBacklogReport(suggestions, state.Prioritized(), state.History())
	}
	return writeBacklog(cmd.OutOrStdout(), report, format)
}
