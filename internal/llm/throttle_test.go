package llm

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleGate_RejectsWhileInFlight(t *testing.T) {
	clock := newFakeClock()
	gate := NewThrottleGate(clock, 2*time.Second)

	assert.True(t, gate.TryAdmit(), "call A")
	assert.True(t, gate.Busy())
	assert.False(t, gate.TryAdmit(), "call B while A in flight")

	// A is still in flight past the interval.
	clock.Advance(3 * time.Second)
	assert.False(t, gate.TryAdmit())

	gate.Release()
	assert.False(t, gate.Busy())
	assert.True(t, gate.TryAdmit(), "interval since A's start already elapsed")
}

func TestThrottleGate_MinimumInterval(t *testing.T) {
	clock := newFakeClock()
	gate := NewThrottleGate(clock, 2*time.Second)

	assert.True(t, gate.TryAdmit())
	gate.Release()

	clock.Advance(500 * time.Millisecond)
	assert.False(t, gate.TryAdmit(), "too soon after A started")

	clock.Advance(1499 * time.Millisecond)
	assert.False(t, gate.TryAdmit())

	clock.Advance(time.Millisecond)
	assert.True(t, gate.TryAdmit(), "2s since A started")
	gate.Release()
}

func TestThrottleGate_RejectionLeavesStateUnchanged(t *testing.T) {
	clock := newFakeClock()
	gate := NewThrottleGate(clock, 2*time.Second)

	assert.True(t, gate.TryAdmit())
	gate.Release()

	// Repeated rejections must not push the next admission further out.
	for i := 0; i < 5; i++ {
		clock.Advance(300 * time.Millisecond)
		assert.False(t, gate.TryAdmit())
	}
	clock.Advance(500 * time.Millisecond)
	assert.True(t, gate.TryAdmit())
}

func TestThrottleGate_NoInterval(t *testing.T) {
	gate := NewThrottleGate(newFakeClock(), 0)

	assert.True(t, gate.TryAdmit())
	assert.False(t, gate.TryAdmit())
	gate.Release()
	assert.True(t, gate.TryAdmit())
}

func TestThrottleGate_ConcurrentAdmission(t *testing.T) {
	gate := NewThrottleGate(newFakeClock(), 2*time.Second)

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if gate.TryAdmit() {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
}
