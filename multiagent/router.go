package multiagent

import (
	"context"
	"fmt"

	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/agenterrors"
	"github.com/wrenlabs/agentresponses/responses"
	"github.com/wrenlabs/agentresponses/schema"
)

// RoutedAgent pairs an agent with the description the Router's classify
// call shows the model, grounded in the teacher's LLMRouter.buildAgentList
// (multi/llm_router.go), which builds the same name->description map from
// each agent's HandoffDescription/SystemPrompt.
type RoutedAgent struct {
	Agent       *agentcore.Agent
	Description string
}

// classifyChoice is the structured-output shape the classify call is
// constrained to (§4.7): Choice is a string holding an agent index in
// decimal, the literal "fallback", or "none".
type classifyChoice struct {
	Choice    string `json:"choice"`
	Reasoning string `json:"reasoning,omitempty"`
}

var classifySchemaDoc = schema.Object(
	schema.Property("choice", schema.String(`an integer index into the agent list as a string, or "fallback", or "none"`)).Required(),
	schema.Property("reasoning", schema.String("brief reasoning for the chosen agent")),
)

// Router holds an ordered list of candidate agents and an optional
// fallback (§4.7). Immutable after construction.
type Router struct {
	responder *responses.Responder
	model     string
	agents    []RoutedAgent
	fallback  *agentcore.Agent
}

// NewRouter builds a Router. model should name a fast/cheap model, per
// §4.7's "one LLM call with a fast model".
func NewRouter(responder *responses.Responder, model string, agents []RoutedAgent, fallback *agentcore.Agent) *Router {
	return &Router{responder: responder, model: model, agents: agents, fallback: fallback}
}

// Classify issues one LLM call with a structured output of shape
// {choice: string, reasoning?}, where choice is an agent index written as a
// decimal string, "fallback" or "none"; a bare JSON integer does not pass
// the schema. It resolves the choice to an index into r.agents, or -1 for
// fallback/none.
func (r *Router) Classify(ctx context.Context, input string) (int, string, error) {
	prompt := "Select the best agent to handle this request.\n\nAgents:\n"
	for i, a := range r.agents {
		prompt += fmt.Sprintf("%d: %s\n", i, a.Description)
	}
	prompt += fmt.Sprintf("\nRequest: %s\n\nRespond with the index of the best agent, \"fallback\" if none fit well but a fallback exists, or \"none\" if nothing fits.", input)

	schemaBytes, err := jsonMarshal(classifySchemaDoc)
	if err != nil {
		return -1, "", err
	}

	resp, err := r.responder.Respond(ctx, &responses.Request{
		Model: r.model,
		Input: []responses.InputItem{responses.NewMessage(responses.RoleUser, prompt)},
		StructuredOutput: &responses.StructuredOutput{
			Type:   "json_schema",
			Schema: schemaBytes,
			Strict: true,
		},
	})
	if err != nil {
		return -1, "", err
	}

	validator, err := schema.Compile(classifySchemaDoc)
	if err != nil {
		return -1, "", err
	}
	var choice classifyChoice
	if err := validator.DecodeStrict([]byte(resp.OutputText()), &choice); err != nil {
		return -1, "", fmt.Errorf("multiagent: router classify: %w", err)
	}

	switch choice.Choice {
	case "fallback", "none":
		return -1, choice.Reasoning, nil
	default:
		idx, err := parseAgentIndex(choice.Choice, len(r.agents))
		if err != nil {
			return -1, "", err
		}
		return idx, choice.Reasoning, nil
	}
}

// Route calls Classify then immediately invokes the selected agent's
// Interact (§4.7). "none" with no fallback returns Error{kind=Handoff}.
func (r *Router) Route(ctx context.Context, input string) agentcore.AgentResult {
	idx, reasoning, err := r.Classify(ctx, input)
	if err != nil {
		cause := agenterrors.Wrap(agenterrors.KindHandoff, "router_classify_failed", err)
		return agentcore.Error{Kind: agenterrors.KindHandoff, Cause: cause}
	}

	var target *agentcore.Agent
	if idx >= 0 {
		target = r.agents[idx].Agent
	} else if r.fallback != nil {
		target = r.fallback
	} else {
		cause := agenterrors.New(agenterrors.KindHandoff, "router_no_match",
			fmt.Sprintf("router selected no agent and has no fallback (reasoning: %s)", reasoning))
		return agentcore.Error{Kind: agenterrors.KindHandoff, Cause: cause}
	}

	return target.Interact(ctx, agentcore.NewAgentContext(""), input)
}

// OnRouteSelected is a synthetic event emitted before any text when routing
// in a streaming context, per §4.7's "streaming variant forwards ... plus a
// synthetic onRouteSelected(agent) event". The core Router is buffered-only
// (agentcore.Agent.Interact is buffered); callers wanting a streaming
// variant attach this callback around their own call to Classify before
// invoking the target agent's streaming path.
type OnRouteSelected func(agentName string)
