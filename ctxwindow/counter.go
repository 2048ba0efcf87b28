// Package ctxwindow implements the context-window manager (§4.9): pluggable
// strategies that rewrite conversation history strictly between turns,
// plus the token counter both strategies depend on. Grounded in the
// teacher's memory/token.go (EstimateTokens' chars/4 approximation) and
// memory/summary.go (the structured-summary prompt pattern), adapted from
// the teacher's own agentcore.AgentMessage shape to responses.InputItem.
package ctxwindow

import (
	"github.com/wrenlabs/agentresponses/responses"
)

// TokenCounter estimates the token cost of one input item. Pluggable per
// §4.9; DefaultTokenCounter is the module's chars/4 approximation.
type TokenCounter interface {
	Count(item responses.InputItem) int
}

// image detail token estimates, fixed per §4.9.
const (
	imageTokensLow  = 85
	imageTokensHigh = 170
	imageTokensAuto = 765
)

// DefaultTokenCounter approximates text tokens as ceil(len/4), grounded in
// the teacher's memory/token.go EstimateTokens, and uses the spec's fixed
// per-detail-level estimates for images.
type DefaultTokenCounter struct{}

// Count implements TokenCounter.
func (DefaultTokenCounter) Count(item responses.InputItem) int {
	switch v := item.(type) {
	case responses.MessageItem:
		var total int
		for _, c := range v.Contents {
			total += countContent(c)
		}
		return total
	case responses.FunctionToolCallItem:
		return ceilDiv4(len(v.Name) + len(v.ArgumentsRaw))
	case responses.FunctionToolCallOutputItem:
		return ceilDiv4(len(v.Output))
	default:
		return 0
	}
}

func countContent(c responses.ContentBlock) int {
	switch v := c.(type) {
	case responses.TextBlock:
		return ceilDiv4(len(v.Text))
	case responses.ImageBlock:
		switch v.Detail {
		case responses.DetailLow:
			return imageTokensLow
		case responses.DetailHigh:
			return imageTokensHigh
		default:
			return imageTokensAuto
		}
	default:
		return 0
	}
}

// ceilDiv4 computes ceil(n/4), at least 1 for any non-empty input and 0 for
// empty, matching the teacher's "at least 1" floor for non-empty text.
func ceilDiv4(n int) int {
	if n == 0 {
		return 0
	}
	if v := (n + 3) / 4; v > 0 {
		return v
	}
	return 1
}

// CountHistory sums the counter's estimate across an entire history slice.
func CountHistory(counter TokenCounter, history []responses.InputItem) int {
	var total int
	for _, item := range history {
		total += counter.Count(item)
	}
	return total
}
