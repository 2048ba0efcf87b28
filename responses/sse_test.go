package responses

import (
	"io"
	"strings"
	"testing"
)

func TestSSEReaderReassemblesSingleEvent(t *testing.T) {
	body := "event: response.output_text.delta\ndata: {\"type\":\"response.output_text.delta\",\"delta\":\"hi\"}\n\n"
	r := newSSEReader(strings.NewReader(body))
	ev, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if ev.Event != "response.output_text.delta" {
		t.Fatalf("ev.Event = %q, want response.output_text.delta", ev.Event)
	}
	if !strings.Contains(ev.Data, `"delta":"hi"`) {
		t.Fatalf("ev.Data = %q, want it to contain the delta payload", ev.Data)
	}
}

func TestSSEReaderSkipsHeartbeats(t *testing.T) {
	body := ": heartbeat\n\ndata: {\"type\":\"response.completed\"}\n\n"
	r := newSSEReader(strings.NewReader(body))
	ev, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !strings.Contains(ev.Data, "response.completed") {
		t.Fatalf("ev.Data = %q, want the completed payload, heartbeat should have been skipped", ev.Data)
	}
}

func TestSSEReaderJoinsMultipleDataLines(t *testing.T) {
	body := "data: line1\ndata: line2\n\n"
	r := newSSEReader(strings.NewReader(body))
	ev, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if ev.Data != "line1\nline2" {
		t.Fatalf("ev.Data = %q, want %q", ev.Data, "line1\nline2")
	}
}

func TestSSEReaderReturnsEOFAtEnd(t *testing.T) {
	r := newSSEReader(strings.NewReader(""))
	_, err := r.Next()
	if err != io.EOF {
		t.Fatalf("Next() error = %v, want io.EOF", err)
	}
}

func TestSSEReaderMultipleEventsInSequence(t *testing.T) {
	body := "data: {\"a\":1}\n\ndata: {\"b\":2}\n\n"
	r := newSSEReader(strings.NewReader(body))
	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first.Data != `{"a":1}` {
		t.Fatalf("first.Data = %q, want {\"a\":1}", first.Data)
	}
	second, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if second.Data != `{"b":2}` {
		t.Fatalf("second.Data = %q, want {\"b\":2}", second.Data)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next() after last event = %v, want io.EOF", err)
	}
}

func TestParseSSEPayloadDoneSentinel(t *testing.T) {
	_, done, err := parseSSEPayload("[DONE]")
	if err != nil {
		t.Fatalf("parseSSEPayload() error = %v", err)
	}
	if !done {
		t.Fatalf("parseSSEPayload([DONE]) done = false, want true")
	}
}

func TestParseSSEPayloadDecodesJSON(t *testing.T) {
	payload, done, err := parseSSEPayload(`{"type":"response.output_text.delta","delta":"hi"}`)
	if err != nil {
		t.Fatalf("parseSSEPayload() error = %v", err)
	}
	if done {
		t.Fatalf("parseSSEPayload() done = true, want false")
	}
	if payload.Delta != "hi" {
		t.Fatalf("payload.Delta = %q, want hi", payload.Delta)
	}
}

func TestParseSSEPayloadRejectsMalformedJSON(t *testing.T) {
	_, _, err := parseSSEPayload("{not json")
	if err == nil {
		t.Fatalf("parseSSEPayload() with malformed JSON succeeded, want error")
	}
}
