package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/wrenlabs/agentresponses/schema"
)

// StreamCallbacks groups the callback set a caller attaches to a
// StreamHandle before calling Start (§4.2). All callbacks are optional;
// nil callbacks are simply not invoked.
//
// §4.2 also lists onToolResult, gated on "when a tool store is attached".
// That gate can never be satisfied here: tool lookup, argument decoding,
// and invocation are the agentic loop's job (agentcore's turn loop
// dispatches FunctionToolCall items against a ToolLookup once a turn
// completes), not this transport-only Responder's — and
// tools.FunctionToolStore already imports this package to satisfy
// agentcore.ToolHandle, so a Responder-side tool store would be an import
// cycle. A tool call's outcome is only ever known one layer up, so
// onToolResult is intentionally omitted rather than wired to nothing.
type StreamCallbacks struct {
	OnTextDelta      func(delta string)
	OnPartialJSON    func(partial map[string]any)
	OnToolCall       func(call FunctionToolCall)
	OnTurnComplete   func()
	OnParsedComplete func(final map[string]any)
	OnComplete       func(resp *Response)
	OnError          func(err error)
}

// structuredOutputBufferKey accumulates a structured response's own text
// deltas in the same partialAggregator tool-call arguments use, since a
// structured final answer arrives over wireTextDelta rather than a
// call-id-scoped wireToolCallDelta. No FunctionToolCall ever carries an
// empty CallID, so this key never collides with a real one.
const structuredOutputBufferKey = ""

// StreamHandle is returned by RespondStream. No I/O occurs until Start is
// called.
type StreamHandle struct {
	responder *Responder
	req       *Request
	ctx       context.Context
	cb        StreamCallbacks

	partial         partialAggregator
	partialParsedCB func(partial map[string]any)

	mu      sync.Mutex
	started bool
}

// partialAggregator accumulates arguments-deltas across one call-id into a
// running best-effort JSON tree, delivered to OnPartialJSON after each
// accumulated delta (throttled by "changed since last delivery", §4.3).
// The actual completion algorithm lives in package schema; this type just
// tracks per-call raw buffers and last-delivered snapshots.
type partialAggregator struct {
	buffers map[string]string
	last    map[string]string
}

func newPartialAggregator() partialAggregator {
	return partialAggregator{buffers: map[string]string{}, last: map[string]string{}}
}

// OnCallbacks attaches the callback set. Must be called before Start.
func (h *StreamHandle) OnCallbacks(cb StreamCallbacks) *StreamHandle {
	h.cb = cb
	return h
}

// OnPartialParsed attaches a typed mirror of §4.3's onPartialParsed<T>: each
// throttled partial-JSON delivery (the same ones OnPartialJSON receives) is
// additionally validated against schema.NullableMirror(T) — the schema
// identical to T's own except every leaf is optional — and decoded into a
// *T, which is handed to cb. Invalid or not-yet-plausible partials (a
// half-written field that doesn't match T's shape yet) are silently
// skipped rather than reported, matching the best-effort nature of partial
// completion. Must be attached before Start; it is a free function rather
// than a method because Go methods cannot carry their own type parameter.
func OnPartialParsed[T any](h *StreamHandle, cb func(*T)) *StreamHandle {
	mirror, err := schema.NullableMirror(reflect.TypeOf((*T)(nil)).Elem())
	var validator *schema.Validator
	if err == nil {
		validator, _ = schema.Compile(mirror)
	}
	h.partialParsedCB = func(partial map[string]any) {
		raw, err := json.Marshal(partial)
		if err != nil {
			return
		}
		if validator != nil {
			if err := validator.Validate(raw); err != nil {
				return
			}
		}
		var dst T
		if err := json.Unmarshal(raw, &dst); err != nil {
			return
		}
		cb(&dst)
	}
	return h
}

// Start begins the HTTP exchange and SSE read loop on a background
// goroutine, dispatching callbacks synchronously on that goroutine
// (§4.2, §5). Start is idempotent: subsequent calls are no-ops.
func (h *StreamHandle) Start() {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return
	}
	h.started = true
	h.mu.Unlock()

	go h.run()
}

func (h *StreamHandle) run() {
	start := time.Now()
	safeInvoke(h.responder.logger.Warn, func() { h.responder.telemetry.OnRequestStart(h.ctx, h.req) })

	resp, _, err := h.responder.doWithRetry(h.ctx, h.req, true)
	if err != nil {
		h.fail(start, err)
		return
	}
	defer resp.Body.Close()

	reader := newSSEReader(resp.Body)
	for {
		ev, err := reader.Next()
		if err != nil {
			h.fail(start, err)
			return
		}

		payload, done, err := parseSSEPayload(ev.Data)
		if err != nil {
			continue // tolerate malformed intermediate frames
		}
		if done {
			continue // "[DONE]" sentinel: wait for response.completed to carry the final Response
		}

		switch payload.Type {
		case wireTextDelta:
			if h.cb.OnTextDelta != nil {
				h.cb.OnTextDelta(payload.Delta)
			}
			if h.req.StructuredOutput != nil {
				h.accumulatePartial(structuredOutputBufferKey, payload.Delta)
			}
		case wireToolCallStart:
			if h.cb.OnToolCall != nil {
				h.cb.OnToolCall(FunctionToolCall{CallID: payload.CallID, Name: payload.Name})
			}
		case wireToolCallDelta:
			h.accumulatePartial(payload.CallID, payload.Delta)
		case wireToolCallDone:
			// tool-call argument stream for this call-id is final; no
			// additional action here, the loop layer dispatches the call.
		case wireCompleted:
			if payload.Response == nil {
				h.fail(start, fmt.Errorf("responses: completed event missing response"))
				return
			}
			final, err := decodeWireResponse(payload.Response)
			if err != nil {
				h.fail(start, err)
				return
			}
			if h.cb.OnTurnComplete != nil {
				h.cb.OnTurnComplete()
			}
			if h.req.StructuredOutput != nil {
				if err := h.deliverParsed(final); err != nil {
					h.fail(start, err)
					return
				}
			}
			h.succeed(start, final)
			return
		case wireError:
			h.fail(start, fmt.Errorf("responses: stream error (status %d): %s", payload.Code, payload.Message))
			return
		}
	}
}

func (h *StreamHandle) accumulatePartial(callID, delta string) {
	h.partial.buffers[callID] += delta
	if h.cb.OnPartialJSON == nil && h.partialParsedCB == nil {
		return
	}
	raw := h.partial.buffers[callID]
	if h.partial.last[callID] == raw {
		return
	}
	h.partial.last[callID] = raw
	tree, err := schema.CompletePartialJSON(raw)
	if err != nil {
		return
	}
	if h.cb.OnPartialJSON != nil {
		h.cb.OnPartialJSON(tree)
	}
	if h.partialParsedCB != nil {
		h.partialParsedCB(tree)
	}
}

// deliverParsed runs §4.3's "final parsing" step: the structured output's
// accumulated text is decoded strictly against req.StructuredOutput.Schema
// once Completed arrives. A schema mismatch is returned as an error (kind
// Parsing is assigned one layer up, by the agentic loop, same as any other
// LLM-call failure); success invokes OnParsedComplete.
func (h *StreamHandle) deliverParsed(final *Response) error {
	var schemaDoc map[string]any
	if err := json.Unmarshal(h.req.StructuredOutput.Schema, &schemaDoc); err != nil {
		return fmt.Errorf("responses: invalid structured output schema: %w", err)
	}
	validator, err := schema.Compile(schemaDoc)
	if err != nil {
		return fmt.Errorf("responses: invalid structured output schema: %w", err)
	}
	var dst map[string]any
	if err := validator.DecodeStrict([]byte(final.OutputText()), &dst); err != nil {
		return fmt.Errorf("responses: structured output parsing failed: %w", err)
	}
	if h.cb.OnParsedComplete != nil {
		h.cb.OnParsedComplete(dst)
	}
	return nil
}

func (h *StreamHandle) succeed(start time.Time, resp *Response) {
	telemetry := RequestTelemetry{Model: h.req.Model, DurationMS: time.Since(start).Milliseconds(), Usage: &resp.Usage}
	safeInvoke(h.responder.logger.Warn, func() { h.responder.telemetry.OnRequestComplete(h.ctx, h.req, telemetry) })
	if h.cb.OnComplete != nil {
		h.cb.OnComplete(resp)
	}
}

func (h *StreamHandle) fail(start time.Time, err error) {
	telemetry := RequestTelemetry{Model: h.req.Model, DurationMS: time.Since(start).Milliseconds(), Err: err}
	safeInvoke(h.responder.logger.Warn, func() { h.responder.telemetry.OnRequestError(h.ctx, h.req, telemetry) })
	if h.cb.OnError != nil {
		h.cb.OnError(err)
	}
}

// RespondStream returns a handle onto which the caller attaches callbacks;
// no I/O occurs before Start (§4.2).
func (r *Responder) RespondStream(ctx context.Context, req *Request) *StreamHandle {
	req.Streaming = true
	return &StreamHandle{
		responder: r,
		req:       req,
		ctx:       ctx,
		partial:   newPartialAggregator(),
	}
}
