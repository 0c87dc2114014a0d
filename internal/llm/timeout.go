package llm

import (
	"context"
	"fmt"
	"time"
)

// DefaultCallTimeout bounds every outbound provider call.
const DefaultCallTimeout = 15 * time.Second

// raceWithTimeout runs op against a deadline of d on clock. When the deadline
// wins, op's context is canceled so the underlying request is aborted.
func raceWithTimeout(ctx context.Context, clock Clock, d time.Duration, op func(context.Context) Outcome) Outcome {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan Outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- FailureOutcome(FailureInternal, fmt.Sprintf("provider call panicked: %v", r))
			}
		}()
		done <- op(callCtx)
	}()

	select {
	case out := <-done:
		return out
	case <-clock.After(d):
		return FailureOutcome(FailureTimeout, fmt.Sprintf("request timeout after %s", d))
	case <-ctx.Done():
		return FailureOutcome(FailureTimeout, fmt.Sprintf("request canceled: %v", ctx.Err()))
	}
}
