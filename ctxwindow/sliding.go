package ctxwindow

import (
	"context"

	"github.com/wrenlabs/agentresponses/responses"
)

// SlidingWindow keeps the most recent history items whose running token sum
// fits within MaxTokens, optionally always retaining developer messages at
// the head regardless of budget (§4.9).
type SlidingWindow struct {
	MaxTokens         int
	Counter           TokenCounter
	RetainDeveloper   bool
}

// NewSlidingWindow builds a SlidingWindow with the default token counter.
func NewSlidingWindow(maxTokens int) *SlidingWindow {
	return &SlidingWindow{MaxTokens: maxTokens, Counter: DefaultTokenCounter{}, RetainDeveloper: true}
}

// Apply implements agentcore.ContextWindowStrategy. Developer messages
// retained at the head are excluded from the running sum accounting for the
// rest of the window, matching the spec's "always retain ... at the head"
// wording (they are a fixed cost paid unconditionally, not competed for
// against the window budget).
func (s *SlidingWindow) Apply(_ context.Context, history []responses.InputItem) ([]responses.InputItem, error) {
	counter := s.Counter
	if counter == nil {
		counter = DefaultTokenCounter{}
	}

	var head []responses.InputItem
	rest := history
	if s.RetainDeveloper {
		head, rest = splitLeadingDeveloper(history)
	}

	var kept []responses.InputItem
	var sum int
	for i := len(rest) - 1; i >= 0; i-- {
		cost := counter.Count(rest[i])
		if sum+cost > s.MaxTokens && len(kept) > 0 {
			break
		}
		kept = append(kept, rest[i])
		sum += cost
	}
	// kept was built newest-first; reverse into chronological order.
	for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
		kept[l], kept[r] = kept[r], kept[l]
	}

	return append(append([]responses.InputItem(nil), head...), kept...), nil
}

// splitLeadingDeveloper peels off the contiguous run of developer-role
// messages at the start of history.
func splitLeadingDeveloper(history []responses.InputItem) (head, rest []responses.InputItem) {
	i := 0
	for i < len(history) {
		m, ok := history[i].(responses.MessageItem)
		if !ok || m.Role != responses.RoleDeveloper {
			break
		}
		i++
	}
	return history[:i], history[i:]
}
