package main

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	agentsAfterRun string
	agentsFormat   string
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Show the agent roster",
	Long: `Show every agent role, whether it is active, and what it does.

Agents are created on first use, so a fresh process shows every role
idle. Use --after-run to run against a folder first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		format, err := resolveFormat(agentsFormat, rt.cfg.Output.Format)
		if err != nil {
			return err
		}

		if agentsAfterRun != "" {
			if _, err := rt.session.Run(context.Background(), agentsAfterRun); err != nil {
				return err
			}
		}
		return writeRoster(cmd.OutOrStdout(), rt.session.Agents(), format)
	},
}

func init() {
	agentsCmd.Flags().StringVar(&agentsAfterRun, "after-run", "", "Run against this folder before printing the roster")
	agentsCmd.Flags().StringVar(&agentsFormat, "format", "", "Output format: text or yaml (default from config)")
}
