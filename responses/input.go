package responses

import "encoding/json"

// Role is the role of a Message input item.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// InputItem is the sum type for ResponseInputItem: Message,
// FunctionToolCall, or FunctionToolCallOutput. Ordered sequence;
// insertion order is conversation order.
type InputItem interface {
	isInputItem()
	ItemType() string
}

// MessageItem is a role-tagged sequence of content blocks.
type MessageItem struct {
	Role     Role           `json:"role"`
	Contents []ContentBlock `json:"content"`
}

func (MessageItem) isInputItem()    {}
func (MessageItem) ItemType() string { return "message" }

// NewMessage builds a MessageItem with a single text content block.
func NewMessage(role Role, text string) MessageItem {
	return MessageItem{Role: role, Contents: []ContentBlock{Text(text)}}
}

// FunctionToolCallItem represents one tool invocation request emitted by
// the model.
type FunctionToolCallItem struct {
	CallID       string          `json:"call_id"`
	Name         string          `json:"name"`
	ArgumentsRaw json.RawMessage `json:"arguments"`
}

func (FunctionToolCallItem) isInputItem()    {}
func (FunctionToolCallItem) ItemType() string { return "function_call" }

// FunctionToolCallOutputItem pairs a tool result with its originating
// call-id. Every FunctionToolCallItem must eventually be followed by
// exactly one of these in the same context, or the interaction fails.
type FunctionToolCallOutputItem struct {
	CallID  string `json:"call_id"`
	Output  string `json:"output"`
	IsError bool   `json:"is_error,omitempty"`
}

func (FunctionToolCallOutputItem) isInputItem()    {}
func (FunctionToolCallOutputItem) ItemType() string { return "function_call_output" }
