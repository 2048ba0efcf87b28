package guardrail

import (
	"context"
	"testing"
)

func TestKeywordBlockerBlocksCaseInsensitive(t *testing.T) {
	g := KeywordBlocker("profanity", []string{"badword"}, "contains a banned word")
	result := g.ValidateInput(context.Background(), "this has a BadWord in it")
	if result.Passed {
		t.Fatalf("ValidateInput() passed, want blocked")
	}
	if result.Reason != "contains a banned word" {
		t.Fatalf("ValidateInput().Reason = %q, want %q", result.Reason, "contains a banned word")
	}
}

func TestKeywordBlockerPassesCleanText(t *testing.T) {
	g := KeywordBlocker("profanity", []string{"badword"}, "contains a banned word")
	if result := g.ValidateInput(context.Background(), "perfectly clean text"); !result.Passed {
		t.Fatalf("ValidateInput() = %+v, want Passed=true", result)
	}
}

func TestContentFilterMatchesPattern(t *testing.T) {
	g, err := ContentFilter("ssn-filter", []string{`\d{3}-\d{2}-\d{4}`}, "looks like an SSN")
	if err != nil {
		t.Fatalf("ContentFilter() error = %v", err)
	}
	if result := g.ValidateInput(context.Background(), "my ssn is 123-45-6789"); result.Passed {
		t.Fatalf("ValidateInput() passed, want blocked")
	}
	if result := g.ValidateInput(context.Background(), "no sensitive data here"); !result.Passed {
		t.Fatalf("ValidateInput() = %+v, want Passed=true", result)
	}
}

func TestContentFilterRejectsInvalidPattern(t *testing.T) {
	_, err := ContentFilter("bad", []string{"("}, "reason")
	if err == nil {
		t.Fatalf("ContentFilter() with an invalid regexp succeeded, want error")
	}
}

func TestLengthLimitBlocksOverLimit(t *testing.T) {
	g := LengthLimit("short", 5)
	result := g.ValidateInput(context.Background(), "this is too long")
	if result.Passed {
		t.Fatalf("ValidateInput() passed, want blocked")
	}
	if result.Suggestion == "" {
		t.Fatalf("ValidateInput() blocked result has no suggestion")
	}
}

func TestLengthLimitPassesUnderLimit(t *testing.T) {
	g := LengthLimit("short", 50)
	if result := g.ValidateInput(context.Background(), "fits fine"); !result.Passed {
		t.Fatalf("ValidateInput() = %+v, want Passed=true", result)
	}
}

func TestOutputKeywordBlocker(t *testing.T) {
	g := OutputKeywordBlocker("secret", []string{"password"}, "leaked a secret")
	if result := g.ValidateOutput(context.Background(), "the password is hunter2"); result.Passed {
		t.Fatalf("ValidateOutput() passed, want blocked")
	}
}

func TestOutputContentFilterAndLengthLimit(t *testing.T) {
	filter, err := OutputContentFilter("email", []string{`[\w.]+@[\w.]+`}, "leaked an email")
	if err != nil {
		t.Fatalf("OutputContentFilter() error = %v", err)
	}
	if result := filter.ValidateOutput(context.Background(), "contact me at a@b.com"); result.Passed {
		t.Fatalf("ValidateOutput() passed, want blocked")
	}

	limit := OutputLengthLimit("short", 3)
	if result := limit.ValidateOutput(context.Background(), "way too long"); result.Passed {
		t.Fatalf("ValidateOutput() passed, want blocked")
	}
}
