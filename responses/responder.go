package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Responder is the HTTP transport specialized to the chat-completions
// "Responses" contract. It is immutable after construction and safe for
// concurrent use (§5); callers run multiple Respond/RespondStream calls
// concurrently on their own scheduling substrate.
type Responder struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	retry       RetryPolicy
	telemetry   TelemetryProcessor
	logger      *slog.Logger
}

// Option configures a Responder at construction time, following the
// functional-options pattern the teacher uses throughout (options.go).
type Option func(*Responder)

func WithHTTPClient(c *http.Client) Option { return func(r *Responder) { r.httpClient = c } }
func WithBaseURL(url string) Option        { return func(r *Responder) { r.baseURL = url } }
func WithAPIKey(key string) Option         { return func(r *Responder) { r.apiKey = key } }
func WithRetryPolicy(p RetryPolicy) Option { return func(r *Responder) { r.retry = p } }
func WithTelemetry(t TelemetryProcessor) Option {
	return func(r *Responder) { r.telemetry = t }
}
func WithLogger(l *slog.Logger) Option { return func(r *Responder) { r.logger = l } }

// NewResponder builds a Responder with the given base URL and API key; the
// HTTP client's connection pool is shared across all Responder operations
// and is owned by the caller, who must release it on shutdown (§5).
func NewResponder(baseURL, apiKey string, opts ...Option) *Responder {
	r := &Responder{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		retry:      DefaultRetryPolicy(),
		telemetry:  NopTelemetry{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Responder) endpoint() string {
	return r.baseURL + "/responses"
}

func (r *Responder) newHTTPRequest(ctx context.Context, body []byte, stream bool) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}
	return httpReq, nil
}

// classifyStatus converts a non-2xx HTTP response into the closed
// ErrorKind-mapped HTTPError used by the retry loop and the agentic loop's
// error surfacing (§7).
func classifyStatus(resp *http.Response, body []byte) *HTTPError {
	var retryAfter time.Duration
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			retryAfter = time.Duration(secs) * time.Second
		}
	}
	return &HTTPError{StatusCode: resp.StatusCode, RetryAfter: retryAfter, Body: string(body)}
}

// doWithRetry executes one logical request, retrying per r.retry, and
// returns the final *http.Response body bytes plus the response object for
// header inspection. The caller is responsible for closing nothing extra;
// the body is fully drained here.
func (r *Responder) doWithRetry(ctx context.Context, req *Request, stream bool) (*http.Response, []byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("responses: invalid request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= r.retry.MaxRetries+1; attempt++ {
		httpReq, err := r.newHTTPRequest(ctx, payload, stream)
		if err != nil {
			return nil, nil, err
		}
		resp, err := r.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			if attempt > r.retry.MaxRetries {
				break
			}
			if sleepErr := sleep(ctx, r.retry.delay(attempt, 0)); sleepErr != nil {
				return nil, nil, sleepErr
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if stream {
				return resp, nil, nil // body left open for the SSE reader
			}
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			return resp, body, err
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		httpErr := classifyStatus(resp, body)
		lastErr = httpErr

		if !r.retry.isRetryableStatus(resp.StatusCode) || attempt > r.retry.MaxRetries {
			return resp, body, httpErr
		}
		if sleepErr := sleep(ctx, r.retry.delay(attempt, httpErr.RetryAfter)); sleepErr != nil {
			return nil, nil, sleepErr
		}
	}
	return nil, nil, lastErr
}

type bufferedResponseWire struct {
	ID      string           `json:"id"`
	Model   string           `json:"model"`
	Created int64            `json:"created_at"`
	Output  []wireOutputItem `json:"output"`
	Usage   Usage            `json:"usage"`
}

// Respond sends one request, drives retry, and returns the fully parsed
// response. Blocking; fails with a classified HTTPError wrapped by the
// caller into the closed AgentError kind set (§4.2, §7).
func (r *Responder) Respond(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	safeInvoke(r.logger.Warn, func() { r.telemetry.OnRequestStart(ctx, req) })

	_, body, err := r.doWithRetry(ctx, req, false)
	telemetry := RequestTelemetry{Model: req.Model, DurationMS: time.Since(start).Milliseconds()}
	if err != nil {
		telemetry.Err = err
		safeInvoke(r.logger.Warn, func() { r.telemetry.OnRequestError(ctx, req, telemetry) })
		return nil, err
	}

	var wire bufferedResponseWire
	if err := json.Unmarshal(body, &wire); err != nil {
		telemetry.Err = err
		safeInvoke(r.logger.Warn, func() { r.telemetry.OnRequestError(ctx, req, telemetry) })
		return nil, fmt.Errorf("responses: decode body: %w", err)
	}
	resp, err := decodeWireResponse(&wireResponse{
		ID: wire.ID, Model: wire.Model, Created: wire.Created, Output: wire.Output, Usage: wire.Usage,
	})
	if err != nil {
		return nil, err
	}
	telemetry.Usage = &resp.Usage
	safeInvoke(r.logger.Warn, func() { r.telemetry.OnRequestComplete(ctx, req, telemetry) })
	return resp, nil
}
