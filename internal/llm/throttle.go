package llm

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the minimum spacing between admitted call starts.
const DefaultMinInterval = 2 * time.Second

// ThrottleGate admits at most one call at a time and spaces admissions by a
// minimum interval measured from the start of the previous admitted call.
type ThrottleGate struct {
	clock    Clock
	limiter  *rate.Limiter
	mu       sync.Mutex
	inFlight bool
}

// NewThrottleGate creates an idle gate. A non-positive interval disables spacing.
func NewThrottleGate(clock Clock, minInterval time.Duration) *ThrottleGate {
	if clock == nil {
		clock = RealClock()
	}
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &ThrottleGate{
		clock:   clock,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// TryAdmit marks the gate busy and returns true, or returns false without
// changing any state when a call is in flight or the interval has not elapsed.
func (g *ThrottleGate) TryAdmit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight {
		return false
	}
	if !g.limiter.AllowN(g.clock.Now(), 1) {
		return false
	}
	g.inFlight = true
	return true
}

// Release clears the in-flight flag. The interval check still applies afterwards.
func (g *ThrottleGate) Release() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}

// Busy reports whether a call is currently in flight.
func (g *ThrottleGate) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}
