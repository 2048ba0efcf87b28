package blueprint

import (
	"github.com/wrenlabs/agentresponses/agentcore"
	"github.com/wrenlabs/agentresponses/ctxwindow"
	"github.com/wrenlabs/agentresponses/responses"
)

// contextWindowKind discriminates ContextWindowBlueprint's two strategies
// (§4.9: sliding window vs. summarization).
type contextWindowKind string

const (
	contextWindowSliding   contextWindowKind = "sliding"
	contextWindowSummarize contextWindowKind = "summarize"
)

// ContextWindowBlueprint serializes whichever ContextWindowStrategy an
// AgentBlueprint names, discriminated by Strategy. Only the fields relevant
// to the chosen strategy need be set; the others are ignored by Build.
type ContextWindowBlueprint struct {
	Strategy string `json:"strategy"`

	// sliding
	MaxTokens       int  `json:"max_tokens,omitempty"`
	RetainDeveloper bool `json:"retain_developer,omitempty"`

	// summarize
	RetainLast int    `json:"retain_last,omitempty"`
	Threshold  int    `json:"threshold,omitempty"`
	Model      string `json:"model,omitempty"`
}

// Build reconstructs the named strategy. Summarize strategies need a live
// Responder to issue their compression call, supplied by the caller rather
// than carried in ContextWindowBlueprint itself: buildOptions passes the
// Responder of the agent the strategy belongs to (built from that agent's
// own ResponderBlueprint when it names one, else BuildEnv.Responder).
func (b ContextWindowBlueprint) Build(path string, responder *responses.Responder) (agentcore.ContextWindowStrategy, error) {
	switch contextWindowKind(b.Strategy) {
	case contextWindowSliding:
		return &ctxwindow.SlidingWindow{
			MaxTokens:       b.MaxTokens,
			Counter:         ctxwindow.DefaultTokenCounter{},
			RetainDeveloper: b.RetainDeveloper,
		}, nil
	case contextWindowSummarize:
		if responder == nil {
			return nil, &ConfigurationError{Path: path, Reason: "summarize strategy requires a responder"}
		}
		return ctxwindow.NewSummarizer(responder, b.Model, b.RetainLast, b.Threshold), nil
	default:
		return nil, &ConfigurationError{Path: path, Reason: "unknown context window strategy " + b.Strategy}
	}
}

// FromSlidingWindow captures a ContextWindowBlueprint from a live SlidingWindow.
func FromSlidingWindow(w *ctxwindow.SlidingWindow) ContextWindowBlueprint {
	return ContextWindowBlueprint{
		Strategy:        string(contextWindowSliding),
		MaxTokens:       w.MaxTokens,
		RetainDeveloper: w.RetainDeveloper,
	}
}

// FromSummarizer captures a ContextWindowBlueprint from a live Summarizer.
func FromSummarizer(s *ctxwindow.Summarizer) ContextWindowBlueprint {
	return ContextWindowBlueprint{
		Strategy:   string(contextWindowSummarize),
		RetainLast: s.RetainLast,
		Threshold:  s.Threshold,
		Model:      s.Model,
	}
}
