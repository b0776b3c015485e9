package backoff

import (
	"math/rand"
	"time"
)

// Policy computes exponential backoff delays between retry attempts.
//
// The delay for attempt n (1-based) is Base * Multiplier^(n-1), capped at
// Max, with an optional random jitter fraction added to spread out retries
// against a shared remote limiter. Because every delay is capped, the total
// time spent retrying one operation is bounded by MaxAttempts * Max.
type Policy struct {
	// Base is the delay before the first retry.
	Base time.Duration

	// Max caps every computed delay, including explicit server-requested
	// delays.
	Max time.Duration

	// Multiplier is the exponential growth factor (>= 1).
	Multiplier float64

	// Jitter is the random fraction (0-1) of the delay added on top.
	// Zero disables jitter, which keeps delays deterministic for tests.
	Jitter float64
}

// Delay returns the backoff delay to apply after the given failed attempt
// (1-based).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	d := float64(p.Base)
	for i := 1; i < attempt; i++ {
		d *= p.Multiplier
		if time.Duration(d) >= p.Max {
			d = float64(p.Max)
			break
		}
	}

	delay := time.Duration(d)
	if delay > p.Max {
		delay = p.Max
	}

	if p.Jitter > 0 {
		delay += time.Duration(rand.Float64() * p.Jitter * float64(delay))
		if delay > p.Max {
			delay = p.Max
		}
	}

	return delay
}

// DelayAfter returns the delay to apply after a failed attempt, preferring
// an explicit server-requested retryAfter duration over the computed
// backoff. The result is always capped at Max so one slow endpoint cannot
// stall the run indefinitely.
func (p Policy) DelayAfter(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		if retryAfter > p.Max {
			return p.Max
		}
		return retryAfter
	}
	return p.Delay(attempt)
}
