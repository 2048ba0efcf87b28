package agentcore

import (
	"github.com/wrenlabs/agentresponses/agenterrors"
	"github.com/wrenlabs/agentresponses/responses"
)

// AgentResult is the sum type every call to Interact/Resume returns: exactly
// one of Success, Error, Handoff, Paused (§3). Callers switch on the
// concrete type.
type AgentResult interface {
	isAgentResult()
}

// Success carries the final assistant text, an optional strictly-decoded
// structured value, the number of turns consumed, and accumulated usage.
type Success struct {
	Output    string
	Parsed    any
	TurnsUsed int
	Usage     responses.Usage
}

func (Success) isAgentResult() {}

// Error wraps a closed-kind failure (§7); Cause carries the underlying
// *agenterrors.AgentError or a wrapped lower-level error.
type Error struct {
	Kind           agenterrors.Kind
	Cause          error
	TurnsCompleted int
}

func (Error) isAgentResult() {}

// Handoff is returned when the model invokes a reserved handoff tool name;
// the outer Agent or orchestrator is responsible for invoking the target
// agent, optionally with a forked context (§4.6).
type Handoff struct {
	TargetAgent string
	Context     AgentContext
}

func (Handoff) isAgentResult() {}

// Paused is returned when a tool requiring confirmation has no approval
// callback attached; Resume re-enters the loop at the pending tool call.
type Paused struct {
	State AgentRunState
}

func (Paused) isAgentResult() {}
