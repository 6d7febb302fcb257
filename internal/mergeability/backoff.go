package mergeability

import (
	"context"
	"time"
)

// BackoffPolicy controls how long the resolver waits for GitHub.
// The delay is fixed, not exponential: computing mergeability takes
// roughly the same time on every attempt.
type BackoffPolicy struct {
	// SettleDelay is the wait between the trigger fetch and the first poll.
	SettleDelay time.Duration
	// RetryDelay is the wait before every retry.
	RetryDelay time.Duration
	// MaxRetries is the number of retries after the first poll.
	MaxRetries int
}

// DefaultBackoffPolicy returns 10s settle, 10s per retry, 10 retries.
func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		SettleDelay: 10 * time.Second,
		RetryDelay:  10 * time.Second,
		MaxRetries:  10,
	}
}

// Delay returns the wait before the given retry (1-based).
func (p BackoffPolicy) Delay(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	return p.RetryDelay
}

// ShouldRetry reports whether another retry is allowed after `retries` retries.
func (p BackoffPolicy) ShouldRetry(retries int) bool {
	return retries < p.MaxRetries
}

// MaxPolls is the total number of polling fetches before giving up.
func (p BackoffPolicy) MaxPolls() int {
	return p.MaxRetries + 1
}

// Clock suspends the caller. Swapped for a fake in tests.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock sleeps on a timer.
type RealClock struct{}

// Sleep blocks for d or until ctx is done.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
