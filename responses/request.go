package responses

import (
	"encoding/json"
	"fmt"
)

// ToolChoiceMode selects how the model must use the supplied tools.
type ToolChoiceMode string

const (
	ToolChoiceAuto     ToolChoiceMode = "auto"
	ToolChoiceNone     ToolChoiceMode = "none"
	ToolChoiceRequired ToolChoiceMode = "required"
)

// ToolChoice is either a mode or a forced tool name, mirroring the
// toolChoice: auto|none|required|{name} union in §4.1.
type ToolChoice struct {
	Mode ToolChoiceMode
	Name string // set only when forcing a specific tool
}

// MarshalJSON renders {name} when a specific tool is forced, otherwise the
// bare mode string.
func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if t.Name != "" {
		return json.Marshal(map[string]string{"name": t.Name})
	}
	mode := t.Mode
	if mode == "" {
		mode = ToolChoiceAuto
	}
	return json.Marshal(string(mode))
}

// ToolSpec is the shape emitted to the model for one callable function.
type ToolSpec struct {
	Type        string          `json:"type"` // always "function"
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
	Strict      bool            `json:"strict"`
}

// StructuredOutput carries the JSON Schema and strictness flag for a
// structured-output request.
type StructuredOutput struct {
	Type   string          `json:"type"` // always "json_schema"
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

// Request is the input to one LLM call (§4.1).
type Request struct {
	Model             string            `json:"model"`
	Input             []InputItem       `json:"-"`
	Tools             []ToolSpec        `json:"tools,omitempty"`
	ToolChoice        *ToolChoice       `json:"tool_choice,omitempty"`
	Temperature       *float64          `json:"temperature,omitempty"`
	TopP              *float64          `json:"top_p,omitempty"`
	MaxOutputTokens   *int              `json:"max_output_tokens,omitempty"`
	PresencePenalty   *float64          `json:"presence_penalty,omitempty"`
	FrequencyPenalty  *float64          `json:"frequency_penalty,omitempty"`
	UserID            string            `json:"user,omitempty"`
	StructuredOutput  *StructuredOutput `json:"structured_output,omitempty"`
	Streaming         bool              `json:"stream,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// Validate enforces the builder's documented constraints (§4.1). Two
// successive user messages without an assistant/tool item between them is
// explicitly *not* validated against — the model tolerates it.
func (r *Request) Validate() error {
	if r.Model == "" {
		return fmt.Errorf("responses: model must not be empty")
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return fmt.Errorf("responses: temperature %v out of range [0,2]", *r.Temperature)
	}
	if r.TopP != nil && (*r.TopP < 0 || *r.TopP > 1) {
		return fmt.Errorf("responses: top_p %v out of range [0,1]", *r.TopP)
	}
	seen := make(map[string]bool, len(r.Tools))
	for _, t := range r.Tools {
		if seen[t.Name] {
			return fmt.Errorf("responses: duplicate tool name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// requestWire is the flattened JSON shape actually sent over the wire;
// MarshalJSON on Request produces byte-identical output for a given
// logical request across runs (stable key order via struct field order,
// no timestamps) — the payload-determinism property in §8.
type requestWire struct {
	Model            string            `json:"model"`
	Input            []wireItem        `json:"input"`
	Stream           bool              `json:"stream,omitempty"`
	Tools            []ToolSpec        `json:"tools,omitempty"`
	ToolChoice       *ToolChoice       `json:"tool_choice,omitempty"`
	Temperature      *float64          `json:"temperature,omitempty"`
	TopP             *float64          `json:"top_p,omitempty"`
	MaxOutputTokens  *int              `json:"max_output_tokens,omitempty"`
	PresencePenalty  *float64          `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64          `json:"frequency_penalty,omitempty"`
	User             string            `json:"user,omitempty"`
	StructuredOutput *StructuredOutput `json:"structured_output,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON serializes the request into the provider-agnostic "Responses"
// shape: items carry "type" discriminators (§4.1, §6).
func (r *Request) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	items := make([]wireItem, len(r.Input))
	for i, it := range r.Input {
		w, err := marshalItem(it)
		if err != nil {
			return nil, err
		}
		items[i] = w
	}
	return json.Marshal(requestWire{
		Model:            r.Model,
		Input:            items,
		Stream:           r.Streaming,
		Tools:            r.Tools,
		ToolChoice:       r.ToolChoice,
		Temperature:      r.Temperature,
		TopP:             r.TopP,
		MaxOutputTokens:  r.MaxOutputTokens,
		PresencePenalty:  r.PresencePenalty,
		FrequencyPenalty: r.FrequencyPenalty,
		User:             r.UserID,
		StructuredOutput: r.StructuredOutput,
		Metadata:         r.Metadata,
	})
}
