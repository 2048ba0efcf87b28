package ctxwindow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wrenlabs/agentresponses/responses"
)

func newTestResponder(t *testing.T, outputText string) *responses.Responder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "resp_1",
			"model":      "test-model",
			"created_at": 0,
			"output": []map[string]any{
				{
					"type": "message",
					"role": "assistant",
					"content": []map[string]any{
						{"type": "text", "text": outputText},
					},
				},
			},
			"usage": map[string]any{},
		})
	}))
	t.Cleanup(srv.Close)
	return responses.NewResponder(srv.URL, "test-key")
}

func TestSummarizerBelowRetainLastIsUntouched(t *testing.T) {
	history := []responses.InputItem{
		responses.NewMessage(responses.RoleUser, "a"),
		responses.NewMessage(responses.RoleAssistant, "b"),
	}
	s := NewSummarizer(nil, "fast-model", 5, 1)

	got, err := s.Apply(context.Background(), history)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(got) != len(history) {
		t.Fatalf("Apply() returned %d items, want all %d untouched (below RetainLast)", len(got), len(history))
	}
}

func TestSummarizerBelowThresholdIsUntouched(t *testing.T) {
	history := []responses.InputItem{
		responses.NewMessage(responses.RoleUser, "a"),
		responses.NewMessage(responses.RoleAssistant, "b"),
		responses.NewMessage(responses.RoleUser, "c"),
	}
	s := NewSummarizer(nil, "fast-model", 1, 1000)

	got, err := s.Apply(context.Background(), history)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(got) != len(history) {
		t.Fatalf("Apply() returned %d items, want all %d untouched (remainder under threshold)", len(got), len(history))
	}
}

func TestSummarizerCompressesRemainder(t *testing.T) {
	responder := newTestResponder(t, "the gist of it")
	history := []responses.InputItem{
		responses.NewMessage(responses.RoleUser, strings.Repeat("x", 200)),
		responses.NewMessage(responses.RoleAssistant, strings.Repeat("y", 200)),
		responses.NewMessage(responses.RoleUser, "recent"),
	}
	s := NewSummarizer(responder, "fast-model", 1, 1)

	got, err := s.Apply(context.Background(), history)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Apply() returned %d items, want 2 (one summary message + the retained tail)", len(got))
	}
	summary := got[0].(responses.MessageItem)
	if summary.Role != responses.RoleDeveloper {
		t.Fatalf("summary role = %v, want developer", summary.Role)
	}
	text := summary.Contents[0].(responses.TextBlock).Text
	if !strings.HasPrefix(text, summaryPreamble) {
		t.Fatalf("summary text %q missing preamble %q", text, summaryPreamble)
	}
	if !strings.Contains(text, "the gist of it") {
		t.Fatalf("summary text %q missing the LLM's compressed output", text)
	}
	tail := got[1].(responses.MessageItem)
	if tail.Contents[0].(responses.TextBlock).Text != "recent" {
		t.Fatalf("tail message = %q, want the untouched most recent message", tail.Contents[0].(responses.TextBlock).Text)
	}
}
