package responses

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// RetryPolicy controls the Responder's exponential-backoff-with-jitter
// retry loop, adapted from loop.go's callLLMWithRetry/retryDelay
// (exponential 2^attempt capped at a max delay, honoring Retry-After) and
// generalized from "retry an LLM call" to "retry one HTTP exchange."
type RetryPolicy struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	Multiplier        float64
	RetryableStatuses map[int]bool
}

// DefaultRetryPolicy matches the defaults in §4.2: retryable set
// {429,500,502,503,504}, maxRetries 3.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
		RetryableStatuses: map[int]bool{
			http.StatusTooManyRequests:     true,
			http.StatusInternalServerError: true,
			http.StatusBadGateway:          true,
			http.StatusServiceUnavailable:  true,
			http.StatusGatewayTimeout:      true,
		},
	}
}

func (p RetryPolicy) isRetryableStatus(status int) bool {
	if p.RetryableStatuses == nil {
		return DefaultRetryPolicy().RetryableStatuses[status]
	}
	return p.RetryableStatuses[status]
}

// delay computes min(maxDelay, initialDelay * multiplier^(attempt-1)) with
// uniform jitter in [0.5*delay, 1.5*delay], lower-bounded by retryAfter
// when the server supplied one.
func (p RetryPolicy) delay(attempt int, retryAfter time.Duration) time.Duration {
	base := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	d := time.Duration(base)
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	jittered := time.Duration(float64(d) * (0.5 + rand.Float64()))
	if retryAfter > jittered {
		jittered = retryAfter
	}
	return jittered
}

// sleep honors context cancellation while waiting out a retry delay.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HTTPError classifies a completed HTTP response that was not a network
// error, distinguishing retryable from immediately-fatal statuses. Exported
// so callers (notably the agentic loop) can classify a failed Respond call
// into the closed agenterrors.Kind set without the Responder doing that
// classification itself (§7: the Responder only exhausts retries; the loop
// decides how a final failure surfaces).
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration
	Body       string
}

func (e *HTTPError) Error() string {
	return http.StatusText(e.StatusCode) + ": " + e.Body
}
