// Package multiagent implements the composition patterns of §4.7/§4.8:
// Router, Supervisor, ParallelAgents, AgentNetwork, Hierarchy, and
// sub-agent-as-tool wrapping. Every pattern is built on top of
// agentcore.Agent's public Interact/Resume surface and package tools, never
// reaching into agentcore's internals — grounded in the teacher's multi/
// package (Team registry, Router interface, RunParallel/RunHandoff) and
// orchestrator/orchestrator.go's supervisor-of-workers shape, adapted from
// the teacher's schema.Message-centric API to the spec's AgentResult sum
// type.
package multiagent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/schema"
	"github.com/wrenlabs/agentresponses/tools"
)

// SharePolicy controls what a child sub-agent inherits from its parent's
// AgentContext when invoked as a tool (§4.8's sub-agent-as-tool). The zero
// value is NOT the spec's default — use DefaultSharePolicy.
type SharePolicy struct {
	ShareState   bool
	ShareHistory bool
}

// DefaultSharePolicy matches §4.8: "shareState (default true), shareHistory
// (default false)".
func DefaultSharePolicy() SharePolicy {
	return SharePolicy{ShareState: true, ShareHistory: false}
}

// WrapAsTool exposes agent as a FunctionTool with a single string parameter
// "input" (§4.8). The parent continues after the child returns; the parent
// is responsible for registering the returned tool in its own
// FunctionToolStore and tool-spec list.
//
// Context sharing: if a parent AgentContext is reachable via
// agentcore.FromContext (i.e. the wrapped tool is being invoked from inside
// another agent's turn loop), the child's context is derived from it with
// Fork per policy. Outside that (the tool invoked standalone, e.g. in a
// test), the child starts from a fresh AgentContext.
//
// A child result of Handoff or Paused has no synchronous tool-output
// representation — both become an IsError output, since a sub-agent
// invocation is defined as synchronous (§4.6 step 3.5.2) and neither
// handing off nor pausing mid-tool-call fits that contract.
func WrapAsTool(name, description string, agent *agentcore.Agent, policy SharePolicy) (*tools.FunctionTool, error) {
	paramSchema := schema.Object(
		schema.Property("input", schema.String("the input to pass to the sub-agent")).Required(),
	)

	invoke := func(ctx context.Context, args json.RawMessage) (any, error) {
		var decoded struct {
			Input string `json:"input"`
		}
		if err := json.Unmarshal(args, &decoded); err != nil {
			return nil, fmt.Errorf("multiagent: %s: %w", name, err)
		}

		childCtx := childContext(ctx, policy)
		result := agent.Interact(ctx, childCtx, decoded.Input)
		switch r := result.(type) {
		case agentcore.Success:
			return r.Output, nil
		case agentcore.Error:
			return nil, fmt.Errorf("sub-agent %q failed: %v", name, r.Cause)
		case agentcore.Handoff:
			return nil, fmt.Errorf("sub-agent %q attempted a handoff to %q, not supported from a synchronous sub-agent call", name, r.TargetAgent)
		case agentcore.Paused:
			return nil, fmt.Errorf("sub-agent %q paused awaiting tool approval, not supported from a synchronous sub-agent call", name)
		default:
			return nil, fmt.Errorf("sub-agent %q returned an unrecognized result type", name)
		}
	}

	return tools.New(name, description, paramSchema, invoke)
}

// childContext derives the context a wrapped sub-agent runs under,
// following policy against whatever parent AgentContext is reachable from
// ctx (none, if the tool is invoked outside a turn loop).
func childContext(ctx context.Context, policy SharePolicy) agentcore.AgentContext {
	parent, ok := agentcore.FromContext(ctx)
	if !ok {
		return agentcore.NewAgentContext("")
	}
	child := parent.Fork(uuid.NewString(), policy.ShareHistory)
	if !policy.ShareState {
		child.State = map[string]any{}
	}
	return child
}

// synthesizeInput renders a set of member outputs into one input string for
// a synthesizer agent (§4.8 ParallelAgents.RunAndSynthesize,
// AgentNetwork.synthesizer).
func synthesizeInput(outputs []string) string {
	s := "Synthesize a single combined answer from the following independent responses:\n\n"
	for i, o := range outputs {
		s += fmt.Sprintf("Response %d:\n%s\n\n", i+1, o)
	}
	return s
}
