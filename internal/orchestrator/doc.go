// Package orchestrator coordinates the agents that turn a folder into a
// change proposal.
//
// The orchestrator package provides:
//   - AgentRegistry: one lazily created worker per role, reused across runs
//   - Builder: the narrated pipeline (scan, scope, focus, plan, draft)
//   - Session: the context object a front-end holds for one conversation
//
// A run is exposed as a stream of Steps. Progress steps carry narration
// text; the final Done step carries the Result. Callers that only need the
// result use RunOnce.
//
// Example usage:
//
//	b := orchestrator.NewBuilder()
//	for step, err := range b.RunNarrated(ctx, "./myproject") {
//		if err != nil {
//			return err
//		}
//		if step.Kind == orchestrator.StepProgress {
//			fmt.Println(step.Text)
//		}
//	}
package orchestrator
