// Package tui provides the interactive chat front-end for agentbuilder.
//
// The chat keeps one orchestrator.Session for its whole lifetime. Input is
// routed by its first word:
//   - /run <path> streams a narrated pipeline run into the transcript
//   - /agents, /backlog, /history show session state
//   - /help lists commands, /quit exits
//   - anything else is recorded as feedback
//
// Usage:
//
//	session := orchestrator.NewSession()
//	if err := tui.Run(ctx, session); err != nil {
//	    return err
//	}
package tui
