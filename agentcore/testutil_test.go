package agentcore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wrenlabs/agentresponses/responses"
)

// fakeResponder spins up an httptest server that always answers with a
// single assistant message carrying text, regardless of the request body.
func fakeResponder(t *testing.T, text string) *responses.Responder {
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
						{"type": "text", "text": text},
					},
				},
			},
			"usage": map[string]any{"input_tokens": 1, "output_tokens": 1, "total_tokens": 2},
		})
	}))
	t.Cleanup(srv.Close)
	return responses.NewResponder(srv.URL, "test-key")
}

// fakeToolCallingResponder answers the first request with a single
// function_call to toolName, then every subsequent request with a plain
// assistant message carrying finalText.
func fakeToolCallingResponder(t *testing.T, toolName, argsJSON, finalText string) *responses.Responder {
	t.Helper()
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		var output []map[string]any
		if calls == 1 {
			output = []map[string]any{
				{
					"type":      "function_call",
					"call_id":   "call_1",
					"name":      toolName,
					"arguments": json.RawMessage(argsJSON),
				},
			}
		} else {
			output = []map[string]any{
				{
					"type": "message",
					"role": "assistant",
					"content": []map[string]any{
						{"type": "text", "text": finalText},
					},
				},
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "resp_1",
			"model":      "test-model",
			"created_at": 0,
			"output":     output,
			"usage":      map[string]any{},
		})
	}))
	t.Cleanup(srv.Close)
	return responses.NewResponder(srv.URL, "test-key")
}

// alwaysToolCallingResponder never produces a final message: every request
// answers with another function_call to toolName, used to drive the loop
// into its max-turns exit.
func alwaysToolCallingResponder(t *testing.T, toolName, argsJSON string) *responses.Responder {
	t.Helper()
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "resp_1",
			"model":      "test-model",
			"created_at": 0,
			"output": []map[string]any{
				{
					"type":      "function_call",
					"call_id":   fmt.Sprintf("call_%d", calls),
					"name":      toolName,
					"arguments": json.RawMessage(argsJSON),
				},
			},
			"usage": map[string]any{},
		})
	}))
	t.Cleanup(srv.Close)
	return responses.NewResponder(srv.URL, "test-key")
}
