package helpers

import (
	"context"
	"sync"
	"time"
)

// FakeClock records requested sleeps without waiting.
type FakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
	// OnSleep is called for every Sleep, after the duration is recorded.
	OnSleep func(d time.Duration)
}

// NewFakeClock creates a FakeClock.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Sleep records d and returns immediately unless ctx is already done.
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	hook := c.OnSleep
	c.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return ctx.Err()
}

// Sleeps returns a copy of every recorded sleep in order.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// Total returns the sum of all recorded sleeps.
func (c *FakeClock) Total() time.Duration {
	var total time.Duration
	for _, d := range c.Sleeps() {
		total += d
	}
	return total
}
