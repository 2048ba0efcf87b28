package responses

import "context"

// RequestTelemetry carries the attributes a TelemetryProcessor can read
// for one request: model, token usage, latency, optional cost (§4.2).
type RequestTelemetry struct {
	Model      string
	DurationMS int64
	Usage      *Usage
	Err        error
}

// TelemetryProcessor observes request lifecycle events. Processors are
// invoked synchronously but must not block meaningfully; a panicking or
// slow processor must not break the request — failures are logged and
// swallowed by the Responder.
type TelemetryProcessor interface {
	OnRequestStart(ctx context.Context, req *Request)
	OnRequestComplete(ctx context.Context, req *Request, t RequestTelemetry)
	OnRequestError(ctx context.Context, req *Request, t RequestTelemetry)
}

// NopTelemetry implements TelemetryProcessor with no-ops, the Responder's
// default.
type NopTelemetry struct{}

func (NopTelemetry) OnRequestStart(context.Context, *Request)                        {}
func (NopTelemetry) OnRequestComplete(context.Context, *Request, RequestTelemetry)    {}
func (NopTelemetry) OnRequestError(context.Context, *Request, RequestTelemetry)       {}

// safeInvoke runs a telemetry callback, recovering from panics so a
// misbehaving processor cannot take down the request it is observing.
func safeInvoke(logger func(msg string, args ...any), fn func()) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger("telemetry processor panicked", "recovered", r)
		}
	}()
	fn()
}
