package ctxwindow

import (
	"testing"

	"github.com/wrenlabs/agentresponses/responses"
)

func TestDefaultTokenCounterText(t *testing.T) {
	item := responses.NewMessage(responses.RoleUser, "twelve charss") // 13 chars
	got := DefaultTokenCounter{}.Count(item)
	if want := 4; got != want { // ceil(13/4) = 4
		t.Fatalf("Count() = %d, want %d", got, want)
	}
}

func TestDefaultTokenCounterEmptyText(t *testing.T) {
	item := responses.NewMessage(responses.RoleUser, "")
	if got := (DefaultTokenCounter{}).Count(item); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}
}

func TestDefaultTokenCounterImage(t *testing.T) {
	tests := []struct {
		detail responses.ImageDetail
		want   int
	}{
		{responses.DetailLow, imageTokensLow},
		{responses.DetailHigh, imageTokensHigh},
		{"", imageTokensAuto},
	}
	for _, tt := range tests {
		item := responses.MessageItem{
			Role:     responses.RoleUser,
			Contents: []responses.ContentBlock{responses.ImageBlock{URL: "http://example.com/x.png", Detail: tt.detail}},
		}
		if got := (DefaultTokenCounter{}).Count(item); got != tt.want {
			t.Errorf("Count() with detail %q = %d, want %d", tt.detail, got, tt.want)
		}
	}
}

func TestDefaultTokenCounterFunctionCall(t *testing.T) {
	item := responses.FunctionToolCallItem{CallID: "c1", Name: "search", ArgumentsRaw: []byte(`{"q":"golang"}`)}
	got := (DefaultTokenCounter{}).Count(item)
	want := ceilDiv4(len("search") + len(`{"q":"golang"}`))
	if got != want {
		t.Fatalf("Count() = %d, want %d", got, want)
	}
}

func TestCountHistory(t *testing.T) {
	history := []responses.InputItem{
		responses.NewMessage(responses.RoleUser, "hello"),
		responses.NewMessage(responses.RoleAssistant, "world"),
	}
	counter := DefaultTokenCounter{}
	got := CountHistory(counter, history)
	want := counter.Count(history[0]) + counter.Count(history[1])
	if got != want {
		t.Fatalf("CountHistory() = %d, want %d", got, want)
	}
}
