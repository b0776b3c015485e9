// Package backoff provides rate pacing and retry control for calls against
// a rate-limited remote API.
//
// # Components
//
//   - Policy: exponential backoff with a base delay, multiplier, cap, and
//     optional jitter. Explicit server-requested delays (Retry-After) take
//     precedence over the computed backoff but are still capped.
//   - Limiter: minimum-interval pacing applied before every outbound call.
//   - Retrier: drives an operation to a fixed attempt cap, sleeping
//     according to the policy between attempts.
//
// # Bounded Retry Time
//
// Every delay is capped at Policy.Max, so the total time one operation can
// spend in retries is at most MaxAttempts * Policy.Max. The pipeline can
// stall on a bad page for a bounded time only.
//
// # Testing
//
// The Retrier's Sleep hook and the Limiter's internal clock are injectable,
// so retry behavior is unit-testable without real sleeping.
package backoff
