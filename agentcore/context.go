// Package agentcore implements the per-interaction agentic loop: the state
// machine that turns one user input into zero or more LLM calls, tool
// dispatches, handoffs, and pauses, guarded by turn limits and guardrails.
package agentcore

import (
	"context"

	"github.com/wrenlabs/agentresponses/responses"
)

// AgentContext is the mutable, per-interaction state threaded through one
// call to Interact or Resume. It is not concurrency-safe: concurrent
// interactions each need their own Copy or Fork, matching the teacher's
// AgentContext snapshot/copy convention in types.go.
type AgentContext struct {
	SystemPrompt string
	History      []responses.InputItem
	State        map[string]any
	TurnCount    int

	TraceID      string
	ParentSpanID string
	RequestID    string
}

// NewAgentContext creates an empty context with the given system prompt.
func NewAgentContext(systemPrompt string) AgentContext {
	return AgentContext{
		SystemPrompt: systemPrompt,
		History:      nil,
		State:        map[string]any{},
	}
}

// Copy returns an independent deep-enough copy: the history slice and state
// map are cloned so appends/writes on the copy never affect the original.
func (c AgentContext) Copy() AgentContext {
	out := c
	out.History = append([]responses.InputItem(nil), c.History...)
	out.State = make(map[string]any, len(c.State))
	for k, v := range c.State {
		out.State[k] = v
	}
	return out
}

// Fork produces a child context for a sub-interaction (sub-agent, handoff
// target). Per §4.8's default sharing policy, the child inherits the
// parent's state map but starts with fresh history and a reset turn count;
// shareHistory, when true, carries the parent's history forward instead.
func (c AgentContext) Fork(newSpanID string, shareHistory bool) AgentContext {
	out := AgentContext{
		SystemPrompt: c.SystemPrompt,
		State:        make(map[string]any, len(c.State)),
		TraceID:      c.TraceID,
		ParentSpanID: newSpanID,
		RequestID:    c.RequestID,
	}
	for k, v := range c.State {
		out.State[k] = v
	}
	if shareHistory {
		out.History = append([]responses.InputItem(nil), c.History...)
	}
	return out
}

// AppendUserText appends a user message carrying a single text block,
// mirroring §4.6 step 1 ("append a Message{user, [Text(input)]}").
func (c *AgentContext) AppendUserText(text string) {
	c.History = append(c.History, responses.NewMessage(responses.RoleUser, text))
}

// agentContextKey is the context.Context key under which the loop stashes
// the in-flight AgentContext, so a sub-agent-as-tool wrapper (§4.8, built
// in package multiagent) can read the parent's state/history when applying
// its sharing policy without agentcore importing that package.
type agentContextKey struct{}

// WithAgentContext attaches ac to ctx for the duration of one tool
// invocation.
func WithAgentContext(ctx context.Context, ac *AgentContext) context.Context {
	return context.WithValue(ctx, agentContextKey{}, ac)
}

// FromContext retrieves the AgentContext a tool is being invoked under, if
// any. Direct calls to Interact/Resume (outside tool dispatch) carry none.
func FromContext(ctx context.Context) (*AgentContext, bool) {
	ac, ok := ctx.Value(agentContextKey{}).(*AgentContext)
	return ac, ok
}
