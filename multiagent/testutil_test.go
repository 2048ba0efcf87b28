package multiagent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/responses"
)

// fakeResponder spins up an httptest server that always answers with a
// single assistant message carrying text, regardless of the request body,
// matching the teacher's preference for stub implementations over a
// mocking framework (multi/modes_test.go's staticModel).
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
			"usage": map[string]any{},
		})
	}))
	t.Cleanup(srv.Close)
	return responses.NewResponder(srv.URL, "test-key")
}

// fakeAgent builds a minimal agent whose every Interact call answers with
// text, independent of input or tool configuration.
func fakeAgent(t *testing.T, name, text string) *agentcore.Agent {
	t.Helper()
	return agentcore.New(
		agentcore.WithName(name),
		agentcore.WithResponder(fakeResponder(t, text)),
		agentcore.WithModel("test-model"),
	)
}

// fakeToolCallingResponder answers the first request in a turn loop with a
// single function_call to toolName, then answers every subsequent request
// (i.e. once the tool's output has been appended to history) with a plain
// assistant message carrying finalText. This models an orchestrator that
// calls exactly one worker tool before producing its final answer.
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
