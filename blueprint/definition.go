package blueprint

import (
	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/schema"
)

// AgentDefinition mirrors Agent but excludes every piece of infrastructure
// an LLM has no business generating: no model, no responder, no class
// names. Tool and guardrail references are plain human-readable names
// (§4.10's "an agent that creates agents"): a caller supplies the available
// tool names and guardrail IDs as part of the generation prompt, an LLM's
// structured-output call returns an AgentDefinition, and Materialize turns
// it into a live agent once the caller supplies the remaining
// infrastructure (model, Responder, and the registries the names resolve
// against).
type AgentDefinition struct {
	Name             string   `json:"name"`
	SystemPrompt     string   `json:"system_prompt"`
	Tools            []string `json:"tools,omitempty"`
	InputGuardrails  []string `json:"input_guardrails,omitempty"`
	OutputGuardrails []string `json:"output_guardrails,omitempty"`
	MaxTurns         int      `json:"max_turns,omitempty"`
}

// DefinitionSchemaDoc is the JSON Schema an LLM call generating
// AgentDefinitions should be constrained to, built with package schema the
// same way every other structured-output call in this module is (§4.3).
// toolNames/guardrailIDs are spliced into the prompt (not the schema
// itself) so the model is told what's available without the schema trying
// to enumerate every valid enum combination.
var DefinitionSchemaDoc = agentDefinitionSchema()

// Materialize builds a live *agentcore.Agent from an AgentDefinition plus
// the infrastructure pieces an LLM cannot supply: the model name, a
// Responder, and the registries tool/guardrail names resolve against.
func (d AgentDefinition) Materialize(model string, env BuildEnv) (*agentcore.Agent, error) {
	blueprint := AgentBlueprint{
		Name:             d.Name,
		Model:            model,
		SystemPrompt:     d.SystemPrompt,
		Tools:            d.Tools,
		InputGuardrails:  d.InputGuardrails,
		OutputGuardrails: d.OutputGuardrails,
		MaxTurns:         d.MaxTurns,
	}
	return blueprint.Build("definition:"+d.Name, env)
}

// ToBlueprint renders an AgentDefinition as the AgentBlueprint it would
// materialize into, for callers that want to inspect or further edit the
// document (e.g. adding handoffs, which AgentDefinition deliberately has no
// room for) before calling Build themselves.
func (d AgentDefinition) ToBlueprint(model string) AgentBlueprint {
	return AgentBlueprint{
		Name:             d.Name,
		Model:            model,
		SystemPrompt:     d.SystemPrompt,
		Tools:            d.Tools,
		InputGuardrails:  d.InputGuardrails,
		OutputGuardrails: d.OutputGuardrails,
		MaxTurns:         d.MaxTurns,
	}
}

func agentDefinitionSchema() map[string]any {
	toolNames := schema.Array("names of tools this agent should have, chosen from the available tool names", schema.String(""))
	return schema.Object(
		schema.Property("name", schema.String("short, unique agent name")).Required(),
		schema.Property("system_prompt", schema.String("the agent's instructions")).Required(),
		schema.Property("tools", toolNames),
		schema.Property("input_guardrails", schema.Array("input guardrail IDs, chosen from the available guardrail IDs", schema.String(""))),
		schema.Property("output_guardrails", schema.Array("output guardrail IDs, chosen from the available guardrail IDs", schema.String(""))),
		schema.Property("max_turns", schema.Int("maximum agentic-loop turns before giving up")),
	)
}
