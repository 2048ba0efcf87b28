package responses

import "encoding/json"

// Usage tracks token accounting for one response, with an optional
// provider-specific cost attached by a telemetry hook (spec.md §9 Open
// Question: cost tracking is provider-specific and is never computed by
// the runtime itself).
type Usage struct {
	InputTokens  int      `json:"input_tokens"`
	OutputTokens int      `json:"output_tokens"`
	TotalTokens  int      `json:"total_tokens"`
	CostUSD      *float64 `json:"cost_usd,omitempty"`
}

// Add accumulates usage across turns, following the teacher's Usage.Add
// pattern (types.go) generalized to the wire Usage shape.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
	if other.CostUSD != nil {
		cost := other.CostUSD
		if u.CostUSD == nil {
			u.CostUSD = cost
		} else {
			sum := *u.CostUSD + *cost
			u.CostUSD = &sum
		}
	}
}

// OutputItem is the sum type for one item the model produced.
type OutputItem interface {
	isOutputItem()
}

// AssistantMessage is a plain assistant message with no tool calls, the
// candidate final answer for a turn.
type AssistantMessage struct {
	Contents []ContentBlock
}

func (AssistantMessage) isOutputItem() {}

// Text concatenates the text contents of the message.
func (m AssistantMessage) Text() string {
	var out string
	for _, c := range m.Contents {
		if t, ok := c.(TextBlock); ok {
			out += t.Text
		}
	}
	return out
}

// FunctionToolCall mirrors the input-side item but appears on the output
// side when the model requests a tool invocation.
type FunctionToolCall struct {
	CallID       string
	Name         string
	ArgumentsRaw json.RawMessage
}

func (FunctionToolCall) isOutputItem() {}

// Response is the buffered result of one Responder call.
type Response struct {
	ID               string
	Model            string
	CreatedAtEpochS  int64
	Output           []OutputItem
	Usage            Usage
}

// OutputText concatenates the text contents of every AssistantMessage in
// Output, in order — the derived field described in §3.
func (r *Response) OutputText() string {
	var out string
	for _, item := range r.Output {
		if m, ok := item.(AssistantMessage); ok {
			out += m.Text()
		}
	}
	return out
}

// ToolCalls returns every FunctionToolCall in Output, in emission order.
func (r *Response) ToolCalls() []FunctionToolCall {
	var calls []FunctionToolCall
	for _, item := range r.Output {
		if c, ok := item.(FunctionToolCall); ok {
			calls = append(calls, c)
		}
	}
	return calls
}

// ParsedResponse additionally carries a strictly-decoded structured value.
type ParsedResponse[T any] struct {
	*Response
	Parsed T
}
