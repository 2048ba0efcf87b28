// Package agenterrors defines the closed set of error kinds produced by the
// agent runtime, replacing exceptions-as-control-flow with a typed value
// carrying a stable kind, code, and cause chain.
package agenterrors

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error kinds the runtime can surface.
type Kind string

const (
	KindRateLimit        Kind = "rate_limit"
	KindAuthentication   Kind = "authentication"
	KindServer           Kind = "server"
	KindInvalidRequest   Kind = "invalid_request"
	KindStreaming        Kind = "streaming"
	KindConfiguration    Kind = "configuration"
	KindInputGuardrail   Kind = "input_guardrail"
	KindOutputGuardrail  Kind = "output_guardrail"
	KindToolExecution    Kind = "tool_execution"
	KindHandoff          Kind = "handoff"
	KindParsing          Kind = "parsing"
	KindMaxTurnsExceeded Kind = "max_turns_exceeded"
	KindCancelled        Kind = "cancelled"
)

// AgentError is the single error type returned for all "expected" failure
// modes. Programmer errors (panics in tool implementations) are never
// wrapped here — they propagate unmodified.
type AgentError struct {
	Kind           Kind
	Code           string
	Message        string
	Suggestion     string
	Cause          error
	AgentName      string
	Phase          string
	TurnsCompleted int
}

func (e *AgentError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (suggestion: %s)", e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AgentError) Unwrap() error { return e.Cause }

// New builds an AgentError with the given kind and message.
func New(kind Kind, code, message string) *AgentError {
	return &AgentError{Kind: kind, Code: code, Message: message}
}

// Wrap builds an AgentError from an existing cause.
func Wrap(kind Kind, code string, cause error) *AgentError {
	return &AgentError{Kind: kind, Code: code, Message: cause.Error(), Cause: cause}
}

// WithAgent annotates the error with the agent/phase/turn context the spec
// requires for loop-originated errors.
func (e *AgentError) WithAgent(agentName, phase string, turnsCompleted int) *AgentError {
	e.AgentName = agentName
	e.Phase = phase
	e.TurnsCompleted = turnsCompleted
	return e
}

// WithSuggestion attaches a human-readable remediation hint.
func (e *AgentError) WithSuggestion(s string) *AgentError {
	e.Suggestion = s
	return e
}

// Is reports whether err wraps an *AgentError of the given kind.
func Is(err error, kind Kind) bool {
	var ae *AgentError
	return errors.As(err, &ae) && ae.Kind == kind
}

// Retryable reports whether the error kind is retried at the transport
// layer. Per spec.md §7 this is informational only — the agentic loop
// never retries LLM calls itself; the Responder has already exhausted
// retries by the time an AgentError of kind RateLimit/Server surfaces.
func (k Kind) Retryable() bool {
	switch k {
	case KindRateLimit, KindServer, KindStreaming:
		return true
	default:
		return false
	}
}
