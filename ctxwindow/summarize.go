package ctxwindow

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrenlabs/agentresponses/responses"
)

// summaryPreamble is the fixed prefix applied to every generated summary
// message, matching the literal wording in §4.9.
const summaryPreamble = "Summary of earlier conversation: "

// summarizePrompt asks the cheaper model for a compact recap, grounded in
// the teacher's memory/summary.go structured-summary prompt, simplified to
// plain prose since the spec's replacement message is a single text block
// rather than a section-headed document.
const summarizePrompt = "Summarize the following conversation history concisely, " +
	"preserving goals, decisions, and any concrete facts (file paths, " +
	"names, numbers) a continuation would need. Do not continue the " +
	"conversation or answer any question in it; only summarize.\n\n"

// Summarizer retains the last RetainLast history items verbatim; if the
// remainder's estimated token cost exceeds Threshold, it is replaced with a
// single developer message produced by a separate, cheaper LLM call through
// the same Responder (§4.9).
type Summarizer struct {
	RetainLast int
	Threshold  int
	Counter    TokenCounter
	Responder  *responses.Responder
	Model      string
}

// NewSummarizer builds a Summarizer with the default token counter.
func NewSummarizer(responder *responses.Responder, model string, retainLast, threshold int) *Summarizer {
	return &Summarizer{
		RetainLast: retainLast,
		Threshold:  threshold,
		Counter:    DefaultTokenCounter{},
		Responder:  responder,
		Model:      model,
	}
}

// Apply implements agentcore.ContextWindowStrategy.
func (s *Summarizer) Apply(ctx context.Context, history []responses.InputItem) ([]responses.InputItem, error) {
	if len(history) <= s.RetainLast {
		return history, nil
	}

	remainder := history[:len(history)-s.RetainLast]
	tail := history[len(history)-s.RetainLast:]

	counter := s.Counter
	if counter == nil {
		counter = DefaultTokenCounter{}
	}
	if CountHistory(counter, remainder) <= s.Threshold {
		return history, nil
	}

	summaryText, err := s.summarize(ctx, remainder)
	if err != nil {
		return nil, fmt.Errorf("ctxwindow: summarize remainder: %w", err)
	}

	summaryMsg := responses.NewMessage(responses.RoleDeveloper, summaryPreamble+summaryText)
	return append([]responses.InputItem{summaryMsg}, tail...), nil
}

func (s *Summarizer) summarize(ctx context.Context, remainder []responses.InputItem) (string, error) {
	resp, err := s.Responder.Respond(ctx, &responses.Request{
		Model: s.Model,
		Input: []responses.InputItem{
			responses.NewMessage(responses.RoleUser, summarizePrompt+renderTranscript(remainder)),
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.OutputText()), nil
}

// renderTranscript flattens a history slice into plain text for the
// summarization prompt.
func renderTranscript(history []responses.InputItem) string {
	var b strings.Builder
	for _, item := range history {
		switch v := item.(type) {
		case responses.MessageItem:
			b.WriteString(string(v.Role))
			b.WriteString(": ")
			for _, c := range v.Contents {
				if t, ok := c.(responses.TextBlock); ok {
					b.WriteString(t.Text)
				}
			}
			b.WriteString("\n")
		case responses.FunctionToolCallItem:
			fmt.Fprintf(&b, "tool_call %s(%s)\n", v.Name, string(v.ArgumentsRaw))
		case responses.FunctionToolCallOutputItem:
			fmt.Fprintf(&b, "tool_result: %s\n", v.Output)
		}
	}
	return b.String()
}
