package llm

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countingAttempt(outcomes ...Outcome) (func(context.Context) Outcome, *int) {
	calls := 0
	return func(context.Context) Outcome {
		idx := min(calls, len(outcomes)-1)
		calls++
		return outcomes[idx]
	}, &calls
}

func TestWithRetry_RateLimitExhaustion(t *testing.T) {
	clock := newFakeClock()
	attempt, calls := countingAttempt(FailureOutcome(FailureRateLimited, "429 too many requests"))

	out := withRetry(context.Background(), clock, discardLogger(), 3, attempt)

	assert.Equal(t, 3, *calls)
	assert.Equal(t, OutcomeEmpty, out.Kind)
	assert.Equal(t, FailureRateLimited, out.Cause)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, clock.Sleeps())
	assert.Equal(t, 14*time.Second, clock.TotalSlept())
}

func TestWithRetry_ProviderErrorIsTerminal(t *testing.T) {
	clock := newFakeClock()
	attempt, calls := countingAttempt(
		FailureOutcome(FailureProvider, "API key not valid"),
		TextOutcome("never reached"),
	)

	out := withRetry(context.Background(), clock, discardLogger(), 3, attempt)

	assert.Equal(t, 1, *calls)
	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, FailureProvider, out.Failure.Kind)
	assert.Equal(t, "API key not valid", out.Failure.Message)
	assert.Empty(t, clock.Sleeps())
}

func TestWithRetry_RateLimitThenSuccess(t *testing.T) {
	clock := newFakeClock()
	attempt, calls := countingAttempt(
		FailureOutcome(FailureRateLimited, "429"),
		TextOutcome("tips"),
	)

	out := withRetry(context.Background(), clock, discardLogger(), 3, attempt)

	assert.Equal(t, 2, *calls)
	assert.Equal(t, TextOutcome("tips"), out)
	assert.Equal(t, []time.Duration{2 * time.Second}, clock.Sleeps())
}

func TestWithRetry_TransientFaults(t *testing.T) {
	t.Run("recovers after network fault", func(t *testing.T) {
		clock := newFakeClock()
		attempt, calls := countingAttempt(
			FailureOutcome(FailureNetwork, "connection reset"),
			TextOutcome("ok"),
		)

		out := withRetry(context.Background(), clock, discardLogger(), 3, attempt)

		assert.Equal(t, 2, *calls)
		assert.Equal(t, "ok", out.Text)
		assert.Equal(t, []time.Duration{time.Second}, clock.Sleeps())
	})

	t.Run("final timeout propagates", func(t *testing.T) {
		clock := newFakeClock()
		attempt, calls := countingAttempt(FailureOutcome(FailureTimeout, "request timeout after 15s"))

		out := withRetry(context.Background(), clock, discardLogger(), 3, attempt)

		assert.Equal(t, 3, *calls)
		assert.Equal(t, FailureTimeout, out.FailureKind())
		assert.Equal(t, []time.Duration{time.Second, time.Second}, clock.Sleeps())
	})
}

func TestWithRetry_EmptyResponses(t *testing.T) {
	clock := newFakeClock()
	attempt, calls := countingAttempt(EmptyOutcome(), EmptyOutcome(), TextOutcome("third time"))

	out := withRetry(context.Background(), clock, discardLogger(), 3, attempt)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, "third time", out.Text)
	assert.Empty(t, clock.Sleeps())

	attempt, calls = countingAttempt(EmptyOutcome())
	out = withRetry(context.Background(), clock, discardLogger(), 3, attempt)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, OutcomeEmpty, out.Kind)
	assert.Equal(t, FailureNone, out.Cause)
}

func TestWithRetry_CanceledDuringBackoff(t *testing.T) {
	clock := newFakeClock()
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	out := withRetry(ctx, clock, discardLogger(), 3, func(context.Context) Outcome {
		calls++
		cancel()
		return FailureOutcome(FailureRateLimited, "429")
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, FailureTimeout, out.FailureKind())
}

func TestRateLimitDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, rateLimitDelay(0))
	assert.Equal(t, 4*time.Second, rateLimitDelay(1))
	assert.Equal(t, 8*time.Second, rateLimitDelay(2))
}
