package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wrenlabs/agentresponses/schema"
)

func echoSchema() map[string]any {
	return schema.Object(
		schema.Property("text", schema.String("text to echo")).Required(),
	)
}

func TestNewRejectsInvalidName(t *testing.T) {
	_, err := New("not a valid name!", "desc", echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
		return nil, nil
	})
	if err == nil {
		t.Fatalf("New() with an invalid name succeeded, want error")
	}
}

func TestNewRejectsNilInvoke(t *testing.T) {
	_, err := New("echo", "desc", echoSchema(), nil)
	if err == nil {
		t.Fatalf("New() with nil invoke succeeded, want error")
	}
}

func TestNewRejectsInvalidSchema(t *testing.T) {
	_, err := New("echo", "desc", map[string]any{"type": "not-a-real-type"}, func(ctx context.Context, args json.RawMessage) (any, error) {
		return nil, nil
	})
	if err == nil {
		t.Fatalf("New() with an invalid schema succeeded, want error")
	}
}

func TestInvokeSuccessStringPassthrough(t *testing.T) {
	tool, err := New("echo", "echoes text", echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
		var decoded struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(args, &decoded); err != nil {
			return nil, err
		}
		return decoded.Text, nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := tool.Invoke(context.Background(), json.RawMessage(`{"text":"hi"}`))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out.IsError {
		t.Fatalf("Invoke() returned IsError, output: %s", out.Output)
	}
	if out.Output != "hi" {
		t.Fatalf("Invoke().Output = %q, want %q", out.Output, "hi")
	}
}

func TestInvokeInvalidArgumentsBecomesErrorOutput(t *testing.T) {
	tool, err := New("echo", "echoes text", echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
		return "unreachable", nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := tool.Invoke(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Invoke() returned a Go error = %v, want nil error with IsError output", err)
	}
	if !out.IsError {
		t.Fatalf("Invoke() with missing required field did not set IsError")
	}
}

func TestInvokeFunctionErrorBecomesErrorOutput(t *testing.T) {
	boom := errors.New("boom")
	tool, err := New("echo", "echoes text", echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
		return nil, boom
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := tool.Invoke(context.Background(), json.RawMessage(`{"text":"hi"}`))
	if err != nil {
		t.Fatalf("Invoke() returned a Go error = %v, want nil error with IsError output", err)
	}
	if !out.IsError || out.Output != "boom" {
		t.Fatalf("Invoke() = %+v, want IsError output %q", out, "boom")
	}
}

func TestInvokeUnserializableResultBecomesErrorOutput(t *testing.T) {
	tool, err := New("echo", "echoes text", echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
		return func() {}, nil // functions cannot be JSON-encoded
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := tool.Invoke(context.Background(), json.RawMessage(`{"text":"hi"}`))
	if err != nil {
		t.Fatalf("Invoke() returned a Go error = %v, want nil error with IsError output", err)
	}
	if !out.IsError {
		t.Fatalf("Invoke() with an unserializable result did not set IsError")
	}
}

func TestInvokeSerializesNonStringResultAsJSON(t *testing.T) {
	tool, err := New("count", "counts", echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
		return map[string]any{"count": 3}, nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := tool.Invoke(context.Background(), json.RawMessage(`{"text":"hi"}`))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out.Output != `{"count":3}` {
		t.Fatalf("Invoke().Output = %q, want %q", out.Output, `{"count":3}`)
	}
}

func TestFunctionToolStoreRegisterAndLookup(t *testing.T) {
	store := NewStore()
	tool, err := New("echo", "echoes text", echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	store.Register(tool)

	handle, ok := store.Lookup("echo")
	if !ok || handle.Name() != "echo" {
		t.Fatalf("Lookup(echo) = %v, %v, want the registered tool", handle, ok)
	}
	if _, ok := store.Lookup("missing"); ok {
		t.Fatalf("Lookup(missing) = true, want false")
	}

	got, ok := store.Get("echo")
	if !ok || got != tool {
		t.Fatalf("Get(echo) = %v, %v, want the exact registered *FunctionTool", got, ok)
	}
}

func TestFunctionToolStoreSpecsPreservesOrder(t *testing.T) {
	store := NewStore()
	for _, name := range []string{"a", "b", "c"} {
		tool, err := New(name, "tool "+name, echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
			return "ok", nil
		})
		if err != nil {
			t.Fatalf("New(%s) error = %v", name, err)
		}
		store.Register(tool)
	}
	specs := store.Specs("c", "a", "missing", "b")
	got := make([]string, len(specs))
	for i, s := range specs {
		got[i] = s.Name
	}
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Specs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Specs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFunctionToolStoreAllReturnsEveryTool(t *testing.T) {
	store := NewStore()
	for _, name := range []string{"a", "b"} {
		tool, err := New(name, "tool "+name, echoSchema(), func(ctx context.Context, args json.RawMessage) (any, error) {
			return "ok", nil
		})
		if err != nil {
			t.Fatalf("New(%s) error = %v", name, err)
		}
		store.Register(tool)
	}
	if all := store.All(); len(all) != 2 {
		t.Fatalf("All() returned %d tools, want 2", len(all))
	}
}
