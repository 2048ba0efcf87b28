package blueprint

import (
	"context"

	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/guardrail"
	"github.com/wrenlabs/agentresponses/responses"
)

// BuildEnv carries the process-local resources a blueprint document cannot
// itself serialize (§4.10): a default Responder used by any node that
// doesn't name its own ResponderBlueprint, and the name/ID-keyed registries
// tools and guardrails are recovered from.
type BuildEnv struct {
	Responder  *responses.Responder
	Tools      *ToolRegistry
	Guardrails *guardrail.Registry
}

// inputGuardrailAdapter adapts a guardrail.InputGuardrail (guardrail.Result)
// to agentcore.InputGuardrails (agentcore.GuardrailResult); the two shapes
// share Passed/Reason/Suggestion (guardrail/guardrail.go) and the adapter
// fills GuardrailName from the guardrail's Name(). They are distinct types,
// so a thin adapter is cheaper than making package guardrail import agentcore.
type inputGuardrailAdapter struct{ g guardrail.InputGuardrail }

func (a inputGuardrailAdapter) CheckInput(ctx context.Context, input string) agentcore.GuardrailResult {
	r := a.g.ValidateInput(ctx, input)
	return agentcore.GuardrailResult{Passed: r.Passed, Reason: r.Reason, Suggestion: r.Suggestion, GuardrailName: a.g.Name()}
}

type outputGuardrailAdapter struct{ g guardrail.OutputGuardrail }

func (a outputGuardrailAdapter) CheckOutput(ctx context.Context, output string) agentcore.GuardrailResult {
	r := a.g.ValidateOutput(ctx, output)
	return agentcore.GuardrailResult{Passed: r.Passed, Reason: r.Reason, Suggestion: r.Suggestion, GuardrailName: a.g.Name()}
}
