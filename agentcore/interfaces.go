package agentcore

import (
	"context"
	"encoding/json"

	"github.com/wrenlabs/agentresponses/responses"
)

// ToolHandle is the minimal surface the loop needs from one registered
// tool; package tools's FunctionTool satisfies this structurally so that
// agentcore never imports tools (tools depends on agentcore, not the
// reverse — §2's dependency order).
type ToolHandle interface {
	Name() string
	RequiresConfirmation() bool
	Invoke(ctx context.Context, argumentsRaw json.RawMessage) (responses.FunctionToolCallOutputItem, error)
}

// ToolLookup is the minimal surface of a tool registry; package tools's
// FunctionToolStore satisfies this structurally.
type ToolLookup interface {
	Lookup(name string) (ToolHandle, bool)
}

// GuardrailResult is the shared shape returned by both guardrail kinds
// (§4.5); package guardrail's Result is structurally identical and is
// adapted into this shape at the call site.
type GuardrailResult struct {
	Passed        bool
	Reason        string
	Suggestion    string
	GuardrailName string
}

// InputGuardrails validates the raw user input text before the first LLM
// call of an interaction (not on resume).
type InputGuardrails interface {
	CheckInput(ctx context.Context, input string) GuardrailResult
}

// OutputGuardrails validates the assistant's final text once the loop
// produces a non-tool-call message.
type OutputGuardrails interface {
	CheckOutput(ctx context.Context, output string) GuardrailResult
}

// ContextWindowStrategy rewrites history strictly between turns (§4.9);
// package ctxwindow's strategies satisfy this structurally.
type ContextWindowStrategy interface {
	Apply(ctx context.Context, history []responses.InputItem) ([]responses.InputItem, error)
}

// ApprovalCallback is supplied by a caller wanting synchronous
// confirmation of tools marked requiresConfirmation, in lieu of pausing
// (§4.6 step 3.5.3). It returns true to approve the call.
type ApprovalCallback func(ctx context.Context, call responses.FunctionToolCall) bool

// Telemetry is the loop-level hook invoked once per turn, independent of
// the Responder's own request-level TelemetryProcessor.
type Telemetry interface {
	BeforeTurn(ctx context.Context, turnCount int)
}

// NopTelemetry is the default no-op Telemetry.
type NopTelemetry struct{}

func (NopTelemetry) BeforeTurn(context.Context, int) {}
