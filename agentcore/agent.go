package agentcore

import (
	"encoding/json"
	"fmt"

	"github.com/wrenlabs/agentresponses/responses"
	"github.com/wrenlabs/agentresponses/schema"
)

// Agent is immutable after construction and safe for concurrent use (§5);
// each concurrent interaction must supply its own AgentContext.
type Agent struct {
	name         string
	responder    *responses.Responder
	model        string
	systemPrompt string

	tools            ToolLookup
	toolSpecs        []responses.ToolSpec
	toolChoice       *responses.ToolChoice
	temperature      *float64
	topP             *float64
	maxOutputTokens  *int
	structuredOutput *responses.StructuredOutput
	structuredValidator *schema.Validator

	inputGuardrails  InputGuardrails
	outputGuardrails OutputGuardrails
	contextWindow    ContextWindowStrategy
	telemetry        Telemetry

	handoffs map[string]*Agent // target agent name -> agent, keyed without the prefix

	maxTurns int
}

const defaultMaxTurns = 10

// HandoffToolPrefix is the reserved tool-name prefix recognized as a
// handoff trigger rather than an ordinary tool call (§4.6, §9 Open
// Question 1), grounded in schema/handoff.go's TransferToolPrefix.
const HandoffToolPrefix = "transfer_to_"

// Option configures an Agent at construction time, following the
// teacher's functional-options convention (options.go).
type Option func(*Agent)

func WithName(name string) Option { return func(a *Agent) { a.name = name } }

func WithResponder(r *responses.Responder) Option {
	return func(a *Agent) { a.responder = r }
}

func WithModel(model string) Option { return func(a *Agent) { a.model = model } }

func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) { a.systemPrompt = prompt }
}

func WithToolLookup(tools ToolLookup, specs []responses.ToolSpec) Option {
	return func(a *Agent) { a.tools = tools; a.toolSpecs = specs }
}

func WithToolChoice(tc responses.ToolChoice) Option {
	return func(a *Agent) { a.toolChoice = &tc }
}

func WithTemperature(t float64) Option { return func(a *Agent) { a.temperature = &t } }
func WithTopP(p float64) Option        { return func(a *Agent) { a.topP = &p } }
func WithMaxOutputTokens(n int) Option { return func(a *Agent) { a.maxOutputTokens = &n } }

// WithStructuredOutput attaches the structured-output spec sent to the
// model and compiles its schema into a Validator used to strictly decode
// the final answer once the loop produces one (§4.3's "final parsing").
// A schema that fails to compile is a construction-time programmer error,
// so it panics rather than threading a build error through every Option.
func WithStructuredOutput(so responses.StructuredOutput) Option {
	return func(a *Agent) {
		a.structuredOutput = &so
		var doc map[string]any
		if err := json.Unmarshal(so.Schema, &doc); err != nil {
			panic(fmt.Sprintf("agentcore: invalid structured output schema: %v", err))
		}
		v, err := schema.Compile(doc)
		if err != nil {
			panic(fmt.Sprintf("agentcore: structured output schema does not compile: %v", err))
		}
		a.structuredValidator = v
	}
}

func WithInputGuardrails(g InputGuardrails) Option {
	return func(a *Agent) { a.inputGuardrails = g }
}

func WithOutputGuardrails(g OutputGuardrails) Option {
	return func(a *Agent) { a.outputGuardrails = g }
}

func WithContextWindowStrategy(s ContextWindowStrategy) Option {
	return func(a *Agent) { a.contextWindow = s }
}

func WithTelemetry(t Telemetry) Option { return func(a *Agent) { a.telemetry = t } }

func WithMaxTurns(n int) Option { return func(a *Agent) { a.maxTurns = n } }

// WithHandoffs registers target agents reachable from this agent via the
// reserved transfer_to_ tool-name prefix (§4.6). The tool surface exposing
// these as callable tools is assembled by the caller (typically a
// multiagent package helper) into WithToolLookup's specs; WithHandoffs only
// tells the loop which target to invoke once that name is seen.
func WithHandoffs(targets map[string]*Agent) Option {
	return func(a *Agent) { a.handoffs = targets }
}

// New builds an Agent. Responder and Model are required; everything else
// has a documented default (maxTurns 10, tool choice auto, no guardrails,
// no context-window strategy meaning "send full history").
func New(opts ...Option) *Agent {
	a := &Agent{
		maxTurns:  defaultMaxTurns,
		telemetry: NopTelemetry{},
		handoffs:  map[string]*Agent{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the agent's configured name, used by Supervisor/Hierarchy
// when wrapping this agent as a sub-agent tool.
func (a *Agent) Name() string { return a.name }
