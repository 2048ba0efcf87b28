package responses

import (
	"encoding/json"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestRequestValidateRequiresModel(t *testing.T) {
	req := &Request{}
	if err := req.Validate(); err == nil {
		t.Fatalf("Validate() with empty model succeeded, want error")
	}
}

func TestRequestValidateTemperatureRange(t *testing.T) {
	req := &Request{Model: "gpt", Temperature: ptr(2.5)}
	if err := req.Validate(); err == nil {
		t.Fatalf("Validate() with temperature 2.5 succeeded, want error")
	}
}

func TestRequestValidateTopPRange(t *testing.T) {
	req := &Request{Model: "gpt", TopP: ptr(-0.1)}
	if err := req.Validate(); err == nil {
		t.Fatalf("Validate() with top_p -0.1 succeeded, want error")
	}
}

func TestRequestValidateDuplicateToolNames(t *testing.T) {
	req := &Request{
		Model: "gpt",
		Tools: []ToolSpec{{Type: "function", Name: "a"}, {Type: "function", Name: "a"}},
	}
	if err := req.Validate(); err == nil {
		t.Fatalf("Validate() with duplicate tool names succeeded, want error")
	}
}

func TestRequestValidateAcceptsWellFormedRequest(t *testing.T) {
	req := &Request{Model: "gpt", Temperature: ptr(1.0), TopP: ptr(0.9)}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestRequestMarshalJSONIsDeterministic(t *testing.T) {
	req := &Request{
		Model: "gpt",
		Input: []InputItem{NewMessage(RoleUser, "hi")},
	}
	a, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("Marshal() not deterministic across calls:\n%s\nvs\n%s", a, b)
	}
}

func TestRequestMarshalJSONRejectsInvalidRequest(t *testing.T) {
	req := &Request{} // missing model
	if _, err := json.Marshal(req); err == nil {
		t.Fatalf("Marshal() of an invalid request succeeded, want error")
	}
}

func TestToolChoiceMarshalJSONForcedName(t *testing.T) {
	tc := ToolChoice{Name: "lookup"}
	b, err := json.Marshal(tc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"name":"lookup"}` {
		t.Fatalf("Marshal() = %s, want {\"name\":\"lookup\"}", b)
	}
}

func TestToolChoiceMarshalJSONMode(t *testing.T) {
	tc := ToolChoice{Mode: ToolChoiceRequired}
	b, err := json.Marshal(tc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"required"` {
		t.Fatalf("Marshal() = %s, want \"required\"", b)
	}
}

func TestToolChoiceMarshalJSONDefaultsToAuto(t *testing.T) {
	tc := ToolChoice{}
	b, err := json.Marshal(tc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"auto"` {
		t.Fatalf("Marshal() = %s, want \"auto\"", b)
	}
}
