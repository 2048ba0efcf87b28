package agentcore

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrenlabs/agentresponses/agenterrors"
	"github.com/wrenlabs/agentresponses/responses"
)

// interactConfig carries the per-call options threaded through one
// Interact/Resume invocation.
type interactConfig struct {
	approvalCallback ApprovalCallback
}

// InteractOption configures a single Interact/Resume call (as opposed to
// Option, which configures the Agent itself at construction time).
type InteractOption func(*interactConfig)

// WithApprovalCallback attaches a synchronous confirmation callback for
// tools marked requiresConfirmation, in lieu of pausing (§4.6 step 3.5.3).
func WithApprovalCallback(cb ApprovalCallback) InteractOption {
	return func(c *interactConfig) { c.approvalCallback = cb }
}

func buildInteractConfig(opts []InteractOption) interactConfig {
	var c interactConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Interact runs the agentic loop against base (copied, never mutated in
// place) with rawInput appended as a user message, per §4.6 steps 1-6.
func (a *Agent) Interact(ctx context.Context, base AgentContext, rawInput string, opts ...InteractOption) AgentResult {
	agentCtx := base.Copy()
	if rawInput != "" {
		agentCtx.AppendUserText(rawInput)
	}

	if a.inputGuardrails != nil {
		result := a.inputGuardrails.CheckInput(ctx, rawInput)
		if !result.Passed {
			cause := agenterrors.New(agenterrors.KindInputGuardrail, "input_guardrail_failed", result.Reason).
				WithSuggestion(result.Suggestion).
				WithAgent(a.name, "input_guardrail", agentCtx.TurnCount)
			return Error{Kind: agenterrors.KindInputGuardrail, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
		}
	}

	return a.runTurnLoop(ctx, &agentCtx, buildInteractConfig(opts))
}

// Resume re-enters the loop at step 3.3, with the paused state's pending
// tool call resolved from ApprovedOutputs or RejectedReasons (§4.6).
func (a *Agent) Resume(ctx context.Context, state AgentRunState, opts ...InteractOption) AgentResult {
	agentCtx := state.Context.Copy()

	if state.PendingToolCall == nil {
		cause := agenterrors.New(agenterrors.KindConfiguration, "no_pending_tool_call", "resume called on a state with no pendingToolCall").
			WithAgent(a.name, "resume", agentCtx.TurnCount)
		return Error{Kind: agenterrors.KindConfiguration, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
	}
	pending := state.PendingToolCall

	var out responses.FunctionToolCallOutputItem
	if output, ok := state.ApprovedOutputs[pending.CallID]; ok {
		out = responses.FunctionToolCallOutputItem{CallID: pending.CallID, Output: output}
	} else if reason, ok := state.RejectedReasons[pending.CallID]; ok {
		out = responses.FunctionToolCallOutputItem{
			CallID:  pending.CallID,
			Output:  "Tool execution was rejected: " + reason,
			IsError: true,
		}
	} else {
		cause := agenterrors.New(agenterrors.KindConfiguration, "unresolved_pending_tool_call",
			fmt.Sprintf("pending tool call %q has neither an approved output nor a rejected reason", pending.CallID)).
			WithAgent(a.name, "resume", agentCtx.TurnCount)
		return Error{Kind: agenterrors.KindConfiguration, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
	}

	agentCtx.History = append(agentCtx.History, out)
	return a.runTurnLoop(ctx, &agentCtx, buildInteractConfig(opts))
}

// handoffTarget reports whether name carries the reserved handoff prefix
// and, if so, resolves the configured target agent.
func (a *Agent) handoffTarget(name string) (*Agent, bool) {
	if !strings.HasPrefix(name, HandoffToolPrefix) {
		return nil, false
	}
	target, ok := a.handoffs[strings.TrimPrefix(name, HandoffToolPrefix)]
	return target, ok
}

// runTurnLoop drives §4.6 step 3 onward: the turn loop, tool dispatch,
// handoff/pause short-circuits, and the final output-guardrail check.
func (a *Agent) runTurnLoop(ctx context.Context, agentCtx *AgentContext, cfg interactConfig) AgentResult {
	var usage responses.Usage

	for {
		if err := ctx.Err(); err != nil {
			cause := agenterrors.Wrap(agenterrors.KindCancelled, "cancelled", err).
				WithAgent(a.name, "turn_loop", agentCtx.TurnCount)
			return Error{Kind: agenterrors.KindCancelled, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
		}

		if agentCtx.TurnCount >= a.maxTurns {
			cause := agenterrors.New(agenterrors.KindMaxTurnsExceeded, "max_turns_exceeded",
				fmt.Sprintf("max turns (%d) reached", a.maxTurns)).
				WithAgent(a.name, "turn_loop", agentCtx.TurnCount)
			return Error{Kind: agenterrors.KindMaxTurnsExceeded, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
		}
		agentCtx.TurnCount++
		a.telemetry.BeforeTurn(ctx, agentCtx.TurnCount)

		payloadInput := agentCtx.History
		if a.contextWindow != nil {
			rewritten, err := a.contextWindow.Apply(ctx, agentCtx.History)
			if err != nil {
				cause := agenterrors.Wrap(agenterrors.KindConfiguration, "context_window_failed", err).
					WithAgent(a.name, "context_window", agentCtx.TurnCount)
				return Error{Kind: agenterrors.KindConfiguration, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
			}
			payloadInput = rewritten
		}
		if a.systemPrompt != "" {
			payloadInput = append([]responses.InputItem{responses.NewMessage(responses.RoleDeveloper, a.systemPrompt)}, payloadInput...)
		}

		resp, err := a.responder.Respond(ctx, &responses.Request{
			Model:            a.model,
			Input:            payloadInput,
			Tools:            a.toolSpecs,
			ToolChoice:       a.toolChoice,
			Temperature:      a.temperature,
			TopP:             a.topP,
			MaxOutputTokens:  a.maxOutputTokens,
			StructuredOutput: a.structuredOutput,
		})
		if err != nil {
			cause := classifyLLMError(err).WithAgent(a.name, "llm_call", agentCtx.TurnCount)
			return Error{Kind: cause.Kind, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
		}
		usage.Add(resp.Usage)

		var finalMessage *responses.AssistantMessage
		var toolCalls []responses.FunctionToolCall
		for _, item := range resp.Output {
			switch v := item.(type) {
			case responses.AssistantMessage:
				agentCtx.History = append(agentCtx.History, responses.MessageItem{Role: responses.RoleAssistant, Contents: v.Contents})
				if len(toolCalls) == 0 {
					msg := v
					finalMessage = &msg
				}
			case responses.FunctionToolCall:
				agentCtx.History = append(agentCtx.History, responses.FunctionToolCallItem{
					CallID: v.CallID, Name: v.Name, ArgumentsRaw: v.ArgumentsRaw,
				})
				toolCalls = append(toolCalls, v)
				finalMessage = nil
			}
		}

		if len(toolCalls) == 0 {
			return a.finish(ctx, agentCtx, finalMessage, usage)
		}

		// Handoffs take precedence over tool execution in the same turn
		// (§4.6 tie-break): checked across the whole batch before any
		// tool call in it is dispatched.
		for _, call := range toolCalls {
			if target, ok := a.handoffTarget(call.Name); ok {
				return Handoff{TargetAgent: target.name, Context: *agentCtx}
			}
		}

		if result, paused := a.dispatchToolCalls(ctx, agentCtx, toolCalls, cfg); paused {
			return result
		}
	}
}

// dispatchToolCalls runs the five-step invocation algorithm (§4.4) for each
// call in order, short-circuiting with (Paused, true) on the first call
// requiring confirmation with no approval callback attached — remaining
// calls in the batch are left undispatched, matching the "reenter at step
// 3.3" resume semantics rather than draining the rest of the batch.
func (a *Agent) dispatchToolCalls(ctx context.Context, agentCtx *AgentContext, calls []responses.FunctionToolCall, cfg interactConfig) (AgentResult, bool) {
	for _, call := range calls {
		if a.tools == nil {
			agentCtx.History = append(agentCtx.History, unknownToolOutput(call))
			continue
		}
		handle, found := a.tools.Lookup(call.Name)
		if !found {
			agentCtx.History = append(agentCtx.History, unknownToolOutput(call))
			continue
		}

		if handle.RequiresConfirmation() {
			if cfg.approvalCallback != nil {
				if cfg.approvalCallback(ctx, call) {
					agentCtx.History = append(agentCtx.History, invoke(WithAgentContext(ctx, agentCtx), handle, call))
				} else {
					agentCtx.History = append(agentCtx.History, responses.FunctionToolCallOutputItem{
						CallID: call.CallID, Output: "Tool execution was rejected: not approved", IsError: true,
					})
				}
				continue
			}
			callCopy := call
			return Paused{State: AgentRunState{
				AgentIdentity:   a.name,
				Context:         *agentCtx,
				PendingToolCall: &callCopy,
				ApprovedOutputs: map[string]string{},
				RejectedReasons: map[string]string{},
			}}, true
		}

		agentCtx.History = append(agentCtx.History, invoke(WithAgentContext(ctx, agentCtx), handle, call))
	}
	return nil, false
}

func unknownToolOutput(call responses.FunctionToolCall) responses.FunctionToolCallOutputItem {
	return responses.FunctionToolCallOutputItem{
		CallID: call.CallID, Output: fmt.Sprintf("unknown tool %q", call.Name), IsError: true,
	}
}

// invoke runs the tool and stamps the originating call-id onto the result
// regardless of what the tool implementation set, since the tool itself is
// never given the call-id (only the decoded arguments) and has no other way
// to produce a correctly paired FunctionToolCallOutputItem.
func invoke(ctx context.Context, handle ToolHandle, call responses.FunctionToolCall) responses.FunctionToolCallOutputItem {
	out, err := handle.Invoke(ctx, call.ArgumentsRaw)
	if err != nil {
		return responses.FunctionToolCallOutputItem{CallID: call.CallID, Output: err.Error(), IsError: true}
	}
	out.CallID = call.CallID
	return out
}

// finish runs the output guardrail and returns the interaction's final
// Success or Error (§4.6 steps 5-6).
func (a *Agent) finish(ctx context.Context, agentCtx *AgentContext, finalMessage *responses.AssistantMessage, usage responses.Usage) AgentResult {
	text := ""
	if finalMessage != nil {
		text = finalMessage.Text()
	}

	if a.outputGuardrails != nil {
		result := a.outputGuardrails.CheckOutput(ctx, text)
		if !result.Passed {
			cause := agenterrors.New(agenterrors.KindOutputGuardrail, "output_guardrail_failed", result.Reason).
				WithSuggestion(result.Suggestion).
				WithAgent(a.name, "output_guardrail", agentCtx.TurnCount)
			return Error{Kind: agenterrors.KindOutputGuardrail, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
		}
	}

	var parsed any
	if a.structuredOutput != nil && a.structuredValidator != nil {
		var dst map[string]any
		if err := a.structuredValidator.DecodeStrict([]byte(text), &dst); err != nil {
			cause := agenterrors.Wrap(agenterrors.KindParsing, "structured_output_mismatch", err).
				WithAgent(a.name, "output_parsing", agentCtx.TurnCount)
			return Error{Kind: agenterrors.KindParsing, Cause: cause, TurnsCompleted: agentCtx.TurnCount}
		}
		parsed = dst
	}

	return Success{Output: text, Parsed: parsed, TurnsUsed: agentCtx.TurnCount, Usage: usage}
}
