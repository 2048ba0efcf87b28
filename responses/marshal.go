package responses

import (
	"encoding/json"
	"fmt"
)

// wireContent/wireItem give every sum-type member a flat "type"
// discriminator in the JSON wire shape, matching the "Responses" contract's
// item-with-type-discriminator convention (§6).

type wireContent struct {
	Type   string      `json:"type"`
	Text   string      `json:"text,omitempty"`
	URL    string      `json:"url,omitempty"`
	Base64 string      `json:"base64,omitempty"`
	Detail ImageDetail `json:"detail,omitempty"`
}

func marshalContent(c ContentBlock) wireContent {
	switch v := c.(type) {
	case TextBlock:
		return wireContent{Type: "text", Text: v.Text}
	case ImageBlock:
		return wireContent{Type: "image", URL: v.URL, Base64: v.Base64, Detail: v.Detail}
	default:
		return wireContent{Type: c.Type()}
	}
}

func unmarshalContent(w wireContent) (ContentBlock, error) {
	switch w.Type {
	case "text":
		return TextBlock{Text: w.Text}, nil
	case "image":
		return ImageBlock{URL: w.URL, Base64: w.Base64, Detail: w.Detail}, nil
	default:
		return nil, fmt.Errorf("responses: unknown content type %q", w.Type)
	}
}

type wireItem struct {
	Type      string          `json:"type"`
	Role      Role            `json:"role,omitempty"`
	Content   []wireContent   `json:"content,omitempty"`
	CallID    string          `json:"call_id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Output    string          `json:"output,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

func marshalItem(item InputItem) (wireItem, error) {
	switch v := item.(type) {
	case MessageItem:
		content := make([]wireContent, len(v.Contents))
		for i, c := range v.Contents {
			content[i] = marshalContent(c)
		}
		return wireItem{Type: "message", Role: v.Role, Content: content}, nil
	case FunctionToolCallItem:
		return wireItem{Type: "function_call", CallID: v.CallID, Name: v.Name, Arguments: v.ArgumentsRaw}, nil
	case FunctionToolCallOutputItem:
		return wireItem{Type: "function_call_output", CallID: v.CallID, Output: v.Output, IsError: v.IsError}, nil
	default:
		return wireItem{}, fmt.Errorf("responses: unknown input item type %T", item)
	}
}

// MarshalItems serializes an ordered input sequence into the wire shape.
func MarshalItems(items []InputItem) ([]byte, error) {
	wire := make([]wireItem, len(items))
	for i, item := range items {
		w, err := marshalItem(item)
		if err != nil {
			return nil, err
		}
		wire[i] = w
	}
	return json.Marshal(wire)
}

// UnmarshalItems is the inverse of MarshalItems.
func UnmarshalItems(data []byte) ([]InputItem, error) {
	var wire []wireItem
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	items := make([]InputItem, len(wire))
	for i, w := range wire {
		item, err := unmarshalItem(w)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func unmarshalItem(w wireItem) (InputItem, error) {
	switch w.Type {
	case "message":
		content := make([]ContentBlock, len(w.Content))
		for i, c := range w.Content {
			cb, err := unmarshalContent(c)
			if err != nil {
				return nil, err
			}
			content[i] = cb
		}
		return MessageItem{Role: w.Role, Contents: content}, nil
	case "function_call":
		return FunctionToolCallItem{CallID: w.CallID, Name: w.Name, ArgumentsRaw: w.Arguments}, nil
	case "function_call_output":
		return FunctionToolCallOutputItem{CallID: w.CallID, Output: w.Output, IsError: w.IsError}, nil
	default:
		return nil, fmt.Errorf("responses: unknown item type %q", w.Type)
	}
}
