package blueprint

import (
	"encoding/json"

	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/guardrail"
	"github.com/wrenlabs/agentresponses/responses"
	"github.com/wrenlabs/agentresponses/tools"
)

// AgentBlueprint serializes the construction-time parameters of a single
// agentcore.Agent (§4.10). Tools and guardrails are referenced by registry
// name/ID rather than embedded, since neither has a serializable identity
// of its own (package doc in blueprint.go); handoff targets are nested
// AgentBlueprints, keyed by the name under which they're reachable via the
// transfer_to_ prefix (§4.6).
type AgentBlueprint struct {
	Name         string              `json:"name"`
	Responder    *ResponderBlueprint `json:"responder,omitempty"`
	Model        string              `json:"model"`
	SystemPrompt string              `json:"system_prompt,omitempty"`

	Tools     []string `json:"tools,omitempty"`
	ForceTool string   `json:"force_tool,omitempty"`
	// ToolChoice is one of "auto", "none", "required"; ignored if ForceTool
	// is set.
	ToolChoice string `json:"tool_choice,omitempty"`

	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"top_p,omitempty"`
	MaxOutputTokens *int     `json:"max_output_tokens,omitempty"`

	StructuredOutputSchema json.RawMessage `json:"structured_output_schema,omitempty"`
	StructuredOutputStrict bool            `json:"structured_output_strict,omitempty"`

	InputGuardrails  []string `json:"input_guardrails,omitempty"`
	OutputGuardrails []string `json:"output_guardrails,omitempty"`

	ContextWindow *ContextWindowBlueprint `json:"context_window,omitempty"`

	MaxTurns int                       `json:"max_turns,omitempty"`
	Handoffs map[string]AgentBlueprint `json:"handoffs,omitempty"`
}

// Kind implements Spec.
func (b AgentBlueprint) Kind() Kind { return KindAgent }

// Build reconstructs a live *agentcore.Agent. Handoff targets are built
// first, depth-first, so WithHandoffs receives fully-constructed agents
// (§4.6: a handoff always targets a complete agent, never a composite).
func (b AgentBlueprint) Build(path string, env BuildEnv) (*agentcore.Agent, error) {
	opts, err := b.buildOptions(path, env)
	if err != nil {
		return nil, err
	}
	return agentcore.New(opts...), nil
}

// buildOptions renders the Option slice Build passes to agentcore.New.
// Exposed at this granularity so composite blueprints (SupervisorBlueprint,
// HierarchicalBlueprint) can reuse an AgentBlueprint for the orchestrator's
// model/prompt/tuning parameters while supplying their own WithToolLookup
// and WithName afterward — a later Option in the slice always wins, so
// appending theirs after these is enough to override.
func (b AgentBlueprint) buildOptions(path string, env BuildEnv) ([]agentcore.Option, error) {
	responder := env.Responder
	if b.Responder != nil {
		built, err := b.Responder.Build(path + ".responder")
		if err != nil {
			return nil, err
		}
		responder = built
	}
	if responder == nil {
		return nil, &ConfigurationError{Path: path, Reason: "no responder available (neither the node nor its environment supplied one)"}
	}

	opts := []agentcore.Option{
		agentcore.WithName(b.Name),
		agentcore.WithResponder(responder),
		agentcore.WithModel(b.Model),
	}
	if b.SystemPrompt != "" {
		opts = append(opts, agentcore.WithSystemPrompt(b.SystemPrompt))
	}

	if len(b.Tools) > 0 {
		if env.Tools == nil {
			return nil, &ConfigurationError{Path: path, Reason: "agent references tools but no ToolRegistry was supplied"}
		}
		store := tools.NewStore()
		for _, name := range b.Tools {
			built, err := env.Tools.Build(path+".tools."+name, name)
			if err != nil {
				return nil, err
			}
			tool, ok := built.(*tools.FunctionTool)
			if !ok {
				return nil, &ConfigurationError{Path: path + ".tools." + name, Reason: "registered factory did not produce a *tools.FunctionTool"}
			}
			store.Register(tool)
		}
		opts = append(opts, agentcore.WithToolLookup(store, store.Specs(b.Tools...)))
	}

	switch {
	case b.ForceTool != "":
		opts = append(opts, agentcore.WithToolChoice(responses.ToolChoice{Name: b.ForceTool}))
	case b.ToolChoice != "":
		opts = append(opts, agentcore.WithToolChoice(responses.ToolChoice{Mode: responses.ToolChoiceMode(b.ToolChoice)}))
	}

	if b.Temperature != nil {
		opts = append(opts, agentcore.WithTemperature(*b.Temperature))
	}
	if b.TopP != nil {
		opts = append(opts, agentcore.WithTopP(*b.TopP))
	}
	if b.MaxOutputTokens != nil {
		opts = append(opts, agentcore.WithMaxOutputTokens(*b.MaxOutputTokens))
	}
	if len(b.StructuredOutputSchema) > 0 {
		opts = append(opts, agentcore.WithStructuredOutput(responses.StructuredOutput{
			Type:   "json_schema",
			Schema: b.StructuredOutputSchema,
			Strict: b.StructuredOutputStrict,
		}))
	}

	if len(b.InputGuardrails) > 0 {
		chain, err := resolveInputGuardrails(path, env, b.InputGuardrails)
		if err != nil {
			return nil, err
		}
		opts = append(opts, agentcore.WithInputGuardrails(inputGuardrailAdapter{chain}))
	}
	if len(b.OutputGuardrails) > 0 {
		chain, err := resolveOutputGuardrails(path, env, b.OutputGuardrails)
		if err != nil {
			return nil, err
		}
		opts = append(opts, agentcore.WithOutputGuardrails(outputGuardrailAdapter{chain}))
	}

	if b.ContextWindow != nil {
		strategy, err := b.ContextWindow.Build(path+".context_window", responder)
		if err != nil {
			return nil, err
		}
		opts = append(opts, agentcore.WithContextWindowStrategy(strategy))
	}

	if b.MaxTurns > 0 {
		opts = append(opts, agentcore.WithMaxTurns(b.MaxTurns))
	}

	if len(b.Handoffs) > 0 {
		targets := make(map[string]*agentcore.Agent, len(b.Handoffs))
		for name, child := range b.Handoffs {
			built, err := child.Build(path+".handoffs."+name, env)
			if err != nil {
				return nil, err
			}
			targets[name] = built
		}
		opts = append(opts, agentcore.WithHandoffs(targets))
	}

	return opts, nil
}

func resolveInputGuardrails(path string, env BuildEnv, ids []string) (guardrail.InputGuardrail, error) {
	if env.Guardrails == nil {
		return nil, &ConfigurationError{Path: path, Reason: "agent references input guardrails but no guardrail.Registry was supplied"}
	}
	chain := make([]guardrail.InputGuardrail, 0, len(ids))
	for _, id := range ids {
		g, ok := env.Guardrails.LookupInput(id)
		if !ok {
			return nil, &ConfigurationError{Path: path + ".input_guardrails." + id, Reason: "no input guardrail registered under id " + id}
		}
		chain = append(chain, g)
	}
	return guardrail.InputChain(path+"-input", chain...), nil
}

func resolveOutputGuardrails(path string, env BuildEnv, ids []string) (guardrail.OutputGuardrail, error) {
	if env.Guardrails == nil {
		return nil, &ConfigurationError{Path: path, Reason: "agent references output guardrails but no guardrail.Registry was supplied"}
	}
	chain := make([]guardrail.OutputGuardrail, 0, len(ids))
	for _, id := range ids {
		g, ok := env.Guardrails.LookupOutput(id)
		if !ok {
			return nil, &ConfigurationError{Path: path + ".output_guardrails." + id, Reason: "no output guardrail registered under id " + id}
		}
		chain = append(chain, g)
	}
	return guardrail.OutputChain(path+"-output", chain...), nil
}

// FromAgent is intentionally not provided: agentcore.Agent is immutable with
// unexported fields by design (§5, blueprint.go package doc), so there is no
// live value to introspect back into an AgentBlueprint. Callers that need
// both a live agent and its blueprint build one AgentBlueprint and call
// Build for the former, keeping the latter as-is for serialization.
