package llm

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultMaxAttempts bounds the attempt sequence for one gateway call.
	DefaultMaxAttempts = 3

	transientDelay = time.Second
)

// rateLimitDelay is the wait after a rate-limited attempt: 2s, 4s, 8s, ...
func rateLimitDelay(attemptIndex int) time.Duration {
	return time.Duration(1<<(attemptIndex+1)) * time.Second
}

// withRetry runs attempt up to maxAttempts times.
//
// Rate limits back off exponentially and never end the sequence early. Provider
// errors and internal failures end it immediately. Empty responses move straight to the next attempt.
// Timeouts and network faults wait one second, except on the last attempt where
// they are returned. Running out of attempts yields Empty, with Cause set when
// the final attempt was rate limited.
func withRetry(ctx context.Context, clock Clock, logger *slog.Logger, maxAttempts int, attempt func(context.Context) Outcome) Outcome {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var cause FailureKind
	for i := 0; i < maxAttempts; i++ {
		out := attempt(ctx)
		last := i == maxAttempts-1

		switch out.Kind {
		case OutcomeText:
			return out
		case OutcomeEmpty:
			cause = FailureNone
			logger.Debug("empty response", "attempt", i+1)
			continue
		case OutcomeFailure:
		}

		kind := out.FailureKind()
		switch kind {
		case FailureRateLimited:
			cause = FailureRateLimited
			wait := rateLimitDelay(i)
			logger.Warn("rate limited, backing off", "attempt", i+1, "wait", wait)
			if err := clock.Sleep(ctx, wait); err != nil {
				return FailureOutcome(FailureTimeout, "request canceled during backoff")
			}
		case FailureTimeout, FailureNetwork:
			if last {
				return out
			}
			cause = kind
			logger.Warn("transient failure, retrying", "attempt", i+1, "kind", kind.String())
			if err := clock.Sleep(ctx, transientDelay); err != nil {
				return FailureOutcome(FailureTimeout, "request canceled during retry")
			}
		case FailureNone, FailureMissingCredential, FailureProvider, FailureInternal:
			return out
		}
	}

	logger.Debug("attempts exhausted", "attempts", maxAttempts, "cause", cause.String())
	return Outcome{Kind: OutcomeEmpty, Cause: cause}
}
