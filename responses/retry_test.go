package responses

import (
	"context"
	"testing"
	"time"
)

func TestRetryPolicyDelayGrowsWithAttempt(t *testing.T) {
	p := DefaultRetryPolicy()
	// Jitter is [0.5,1.5]x; compare the minimum possible delay at each
	// attempt so the assertion holds regardless of the random draw.
	minDelay := func(attempt int) time.Duration {
		base := p.InitialDelay
		for i := 1; i < attempt; i++ {
			base *= time.Duration(p.Multiplier)
		}
		if base > p.MaxDelay {
			base = p.MaxDelay
		}
		return time.Duration(float64(base) * 0.5)
	}
	for i := 0; i < 20; i++ {
		d1 := p.delay(1, 0)
		d3 := p.delay(3, 0)
		if d1 < minDelay(1) || d1 > p.MaxDelay {
			t.Fatalf("delay(1) = %v out of expected bounds", d1)
		}
		if d3 < minDelay(3) {
			t.Fatalf("delay(3) = %v below expected minimum %v", d3, minDelay(3))
		}
	}
}

func TestRetryPolicyDelayCapsAtMaxDelay(t *testing.T) {
	p := DefaultRetryPolicy()
	d := p.delay(30, 0) // would be astronomically large uncapped
	if d > p.MaxDelay+time.Duration(float64(p.MaxDelay)*0.5) {
		t.Fatalf("delay(30) = %v, want capped near MaxDelay %v", d, p.MaxDelay)
	}
}

func TestRetryPolicyDelayHonorsRetryAfter(t *testing.T) {
	p := DefaultRetryPolicy()
	retryAfter := 20 * time.Second
	d := p.delay(1, retryAfter)
	if d < retryAfter {
		t.Fatalf("delay(1, retryAfter=%v) = %v, want at least retryAfter", retryAfter, d)
	}
}

func TestIsRetryableStatusDefaults(t *testing.T) {
	p := DefaultRetryPolicy()
	for _, status := range []int{429, 500, 502, 503, 504} {
		if !p.isRetryableStatus(status) {
			t.Errorf("isRetryableStatus(%d) = false, want true", status)
		}
	}
	for _, status := range []int{400, 401, 403, 404} {
		if p.isRetryableStatus(status) {
			t.Errorf("isRetryableStatus(%d) = true, want false", status)
		}
	}
}

func TestSleepHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleep(ctx, time.Second); err == nil {
		t.Fatalf("sleep() on a cancelled context succeeded, want error")
	}
}

func TestSleepReturnsAfterDuration(t *testing.T) {
	start := time.Now()
	if err := sleep(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("sleep() error = %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("sleep() returned before the requested duration elapsed")
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 429, Body: "rate limited"}
	if err.Error() == "" {
		t.Fatalf("Error() returned empty string")
	}
}
