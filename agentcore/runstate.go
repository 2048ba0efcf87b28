package agentcore

import "github.com/wrenlabs/agentresponses/responses"

// AgentRunState is the serializable pause/resume snapshot (§3), grounded in
// hitl/manager.go's checkpoint-snapshot-on-approval-request pattern,
// adapted from a channel-mediated wait to a value the caller persists and
// hands back to Resume whenever it is ready.
type AgentRunState struct {
	AgentIdentity   string
	Context         AgentContext
	PendingToolCall *responses.FunctionToolCall
	ApprovedOutputs map[string]string
	RejectedReasons map[string]string
}
