package responses

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalUnmarshalItemsRoundTrip(t *testing.T) {
	items := []InputItem{
		NewMessage(RoleUser, "hello"),
		FunctionToolCallItem{CallID: "call_1", Name: "lookup", ArgumentsRaw: []byte(`{"q":"go"}`)},
		FunctionToolCallOutputItem{CallID: "call_1", Output: "result", IsError: false},
	}

	data, err := MarshalItems(items)
	if err != nil {
		t.Fatalf("MarshalItems() error = %v", err)
	}

	got, err := UnmarshalItems(data)
	if err != nil {
		t.Fatalf("UnmarshalItems() error = %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("UnmarshalItems() returned %d items, want %d", len(got), len(items))
	}

	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("UnmarshalItems() round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalItemsRejectsUnknownType(t *testing.T) {
	_, err := UnmarshalItems([]byte(`[{"type":"something_unknown"}]`))
	if err == nil {
		t.Fatalf("UnmarshalItems() with an unknown type succeeded, want error")
	}
}

func TestMarshalItemsWithImageContent(t *testing.T) {
	items := []InputItem{
		MessageItem{Role: RoleUser, Contents: []ContentBlock{Image("https://example.com/cat.png", DetailHigh)}},
	}
	data, err := MarshalItems(items)
	if err != nil {
		t.Fatalf("MarshalItems() error = %v", err)
	}
	got, err := UnmarshalItems(data)
	if err != nil {
		t.Fatalf("UnmarshalItems() error = %v", err)
	}
	msg := got[0].(MessageItem)
	img, ok := msg.Contents[0].(ImageBlock)
	if !ok || img.URL != "https://example.com/cat.png" || img.Detail != DetailHigh {
		t.Fatalf("got image block = %#v, want matching URL/Detail", msg.Contents[0])
	}
}
