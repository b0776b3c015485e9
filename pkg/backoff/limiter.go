package backoff

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between consecutive calls, pacing
// requests under a shared external throughput ceiling.
//
// It is the "before call" half of the rate control: every request waits on
// the limiter before going out, independent of retries.
//
// Limiter is safe for concurrent use, though the export pipeline drives it
// from a single goroutine.
type Limiter struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep SleepFunc
}

// NewLimiter creates a limiter enforcing the given minimum interval between
// calls. A zero or negative interval disables pacing.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous call, or until ctx is canceled. The first call never waits.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := l.now()
	var wait time.Duration
	if !l.last.IsZero() {
		if elapsed := now.Sub(l.last); elapsed < l.interval {
			wait = l.interval - elapsed
		}
	}
	l.last = now.Add(wait)
	l.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	return l.sleep(ctx, wait)
}
