package backoff

import (
	"testing"
	"time"
)

func TestPolicy_Delay_ExponentialGrowth(t *testing.T) {
	p := Policy{
		Base:       time.Second,
		Max:        30 * time.Second,
		Multiplier: 2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{10, 30 * time.Second}, // capped
	}

	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %s, want %s", tt.attempt, got, tt.want)
		}
	}
}

func TestPolicy_Delay_InvalidAttemptTreatedAsFirst(t *testing.T) {
	p := Policy{Base: time.Second, Max: 10 * time.Second, Multiplier: 2.0}

	if got := p.Delay(0); got != time.Second {
		t.Errorf("Delay(0) = %s, want %s", got, time.Second)
	}
	if got := p.Delay(-3); got != time.Second {
		t.Errorf("Delay(-3) = %s, want %s", got, time.Second)
	}
}

func TestPolicy_Delay_JitterStaysWithinBounds(t *testing.T) {
	p := Policy{
		Base:       time.Second,
		Max:        30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.5,
	}

	for i := 0; i < 100; i++ {
		got := p.Delay(2)
		if got < 2*time.Second || got > 3*time.Second {
			t.Fatalf("jittered Delay(2) = %s, want within [2s, 3s]", got)
		}
	}
}

func TestPolicy_DelayAfter_PrefersRetryAfter(t *testing.T) {
	p := Policy{
		Base:       time.Second,
		Max:        30 * time.Second,
		Multiplier: 2.0,
	}

	// Explicit server-requested delay wins over the computed backoff.
	if got := p.DelayAfter(1, 5*time.Second); got != 5*time.Second {
		t.Errorf("DelayAfter with retry-after = %s, want 5s", got)
	}

	// But it is still capped at Max.
	if got := p.DelayAfter(1, 5*time.Minute); got != 30*time.Second {
		t.Errorf("DelayAfter with excessive retry-after = %s, want 30s", got)
	}

	// Without retry-after, the computed backoff applies.
	if got := p.DelayAfter(3, 0); got != 4*time.Second {
		t.Errorf("DelayAfter without retry-after = %s, want 4s", got)
	}
}
