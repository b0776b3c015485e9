package backoff

import (
	"context"
	"log/slog"
	"time"
)

// SleepFunc blocks for the given duration or until the context is
// canceled. Tests substitute a fake to avoid real sleeping.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepContext is the default SleepFunc backed by a real timer.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retrier runs an operation up to a fixed number of attempts, applying the
// backoff policy between attempts.
//
// Error classification is delegated to the Retryable and RetryAfter hooks
// so the retrier stays independent of any particular error taxonomy.
type Retrier struct {
	// Policy computes the delay between attempts.
	Policy Policy

	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// Retryable reports whether an error is transient. A nil hook treats
	// every error as terminal.
	Retryable func(error) bool

	// RetryAfter extracts an explicit server-requested delay from an
	// error, or 0. Optional.
	RetryAfter func(error) time.Duration

	// Sleep is the delay function. Defaults to a real timer; tests inject
	// a fake.
	Sleep SleepFunc
}

// Do runs op until it succeeds, returns a non-retryable error, exhausts
// MaxAttempts, or ctx is canceled. The last error is returned unwrapped so
// callers can classify it.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	maxAttempts := r.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if r.Retryable == nil || !r.Retryable(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			slog.Warn("retries exhausted",
				"attempts", attempt,
				"error", lastErr,
			)
			return lastErr
		}

		var retryAfter time.Duration
		if r.RetryAfter != nil {
			retryAfter = r.RetryAfter(lastErr)
		}
		delay := r.Policy.DelayAfter(attempt, retryAfter)

		slog.Debug("retrying after transient error",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"delay", delay,
			"error", lastErr,
		)

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}
