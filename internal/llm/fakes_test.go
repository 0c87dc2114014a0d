package llm

import (
	"context"
	"sync"
	"time"
)

// fakeClock never sleeps. Sleep advances time and records the duration;
// After channels fire only when time is advanced past their deadline.
type fakeClock struct {
	now     time.Time
	waiters []fakeWaiter
	sleeps  []time.Duration
	mu      sync.Mutex
}

type fakeWaiter struct {
	at time.Time
	ch chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.waiters = append(c.waiters, fakeWaiter{at: c.now.Add(d), ch: ch})
	return ch
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()
	c.Advance(d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	pending := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.at.After(c.now) {
			w.ch <- c.now
			continue
		}
		pending = append(pending, w)
	}
	c.waiters = pending
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

func (c *fakeClock) TotalSlept() time.Duration {
	var total time.Duration
	for _, d := range c.Sleeps() {
		total += d
	}
	return total
}

// scriptedBackend returns queued outcomes in order and repeats the last one.
type scriptedBackend struct {
	generate func(ctx context.Context, req Request) Outcome
	outcomes []Outcome
	calls    []Request
	mu       sync.Mutex
}

func newScriptedBackend(outcomes ...Outcome) *scriptedBackend {
	return &scriptedBackend{outcomes: outcomes}
}

func (b *scriptedBackend) Generate(ctx context.Context, req Request) Outcome {
	b.mu.Lock()
	b.calls = append(b.calls, req)
	n := len(b.calls)
	generate := b.generate
	var out Outcome
	if len(b.outcomes) > 0 {
		idx := n - 1
		if idx >= len(b.outcomes) {
			idx = len(b.outcomes) - 1
		}
		out = b.outcomes[idx]
	}
	b.mu.Unlock()

	if generate != nil {
		return generate(ctx, req)
	}
	return out
}

func (b *scriptedBackend) Calls() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.calls...)
}

type memCredentialStore struct {
	err   error
	value string
	gets  int
	mu    sync.Mutex
}

func (s *memCredentialStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	return s.value, s.err
}

func (s *memCredentialStore) Set(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = credential
	return nil
}

func (s *memCredentialStore) Remove(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	return nil
}

type memModelStore struct {
	err   error
	value string
}

func (s *memModelStore) Get(_ context.Context) (string, error) {
	return s.value, s.err
}

func (s *memModelStore) Set(_ context.Context, name string) error {
	s.value = name
	return nil
}
