package responses

import "encoding/json"

// StreamEventType discriminates the StreamEvent sum type.
type StreamEventType string

const (
	EventTextDelta              StreamEventType = "text_delta"
	EventToolCallStart          StreamEventType = "tool_call_start"
	EventToolCallArgumentsDelta StreamEventType = "tool_call_arguments_delta"
	EventToolCallDone           StreamEventType = "tool_call_done"
	EventCompleted              StreamEventType = "completed"
	EventStreamError            StreamEventType = "error"
)

// StreamEvent is the sum type observed on the SSE channel (§3). Events
// arrive in causal order per CallID.
type StreamEvent struct {
	Type          StreamEventType
	TextDelta     string
	CallID        string
	Name          string // set on ToolCallStart
	JSONFragment  string // set on ToolCallArgumentsDelta
	Response      *Response
	ErrorMessage  string
	StatusCode    int
}

// sse wire event types understood from the Responses SSE contract (§6).
const (
	wireTextDelta      = "response.output_text.delta"
	wireToolCallDelta  = "response.function_call_arguments.delta"
	wireToolCallStart  = "response.function_call.start"
	wireToolCallDone   = "response.function_call.done"
	wireCompleted      = "response.completed"
	wireError          = "error"
)

type wireStreamPayload struct {
	Type    string          `json:"type"`
	Delta   string          `json:"delta,omitempty"`
	CallID  string          `json:"call_id,omitempty"`
	Name    string          `json:"name,omitempty"`
	Message string          `json:"message,omitempty"`
	Code    int             `json:"status_code,omitempty"`
	Response *wireResponse  `json:"response,omitempty"`
}

type wireResponse struct {
	ID      string          `json:"id"`
	Model   string          `json:"model"`
	Created int64           `json:"created_at"`
	Output  []wireOutputItem `json:"output"`
	Usage   Usage           `json:"usage"`
}

type wireOutputItem struct {
	Type      string        `json:"type"`
	Content   []wireContent `json:"content,omitempty"`
	CallID    string        `json:"call_id,omitempty"`
	Name      string        `json:"name,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

func decodeWireResponse(w *wireResponse) (*Response, error) {
	resp := &Response{ID: w.ID, Model: w.Model, CreatedAtEpochS: w.Created, Usage: w.Usage}
	for _, item := range w.Output {
		switch item.Type {
		case "message":
			content := make([]ContentBlock, len(item.Content))
			for i, c := range item.Content {
				cb, err := unmarshalContent(c)
				if err != nil {
					return nil, err
				}
				content[i] = cb
			}
			resp.Output = append(resp.Output, AssistantMessage{Contents: content})
		case "function_call":
			resp.Output = append(resp.Output, FunctionToolCall{
				CallID: item.CallID, Name: item.Name, ArgumentsRaw: item.Arguments,
			})
		}
	}
	return resp, nil
}
