// Package webfetch builds the built-in web_fetch FunctionTool: fetch a URL
// and return its body, converted to markdown when it is HTML and unchanged
// otherwise. Adapted from the
// teacher's tools/builtin/fetch.go (FetchTool), ported from the old
// BaseTool/Execute interface to a tools.FunctionTool and trimmed to a
// single "markdown" output mode, which is the only one a spec agent needs
// (goquery/html-to-markdown remain the same teacher dependencies; the
// text/html modes were UI conveniences with no caller in this spec).
package webfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/wrenlabs/agentresponses/schema"
	"github.com/wrenlabs/agentresponses/tools"
)

const defaultMaxBodyBytes = 5 * 1024 * 1024

type request struct {
	URL string `json:"url"`
}

type result struct {
	URL       string `json:"url"`
	Markdown  string `json:"markdown"`
	Truncated bool   `json:"truncated"`
}

// New builds the web_fetch tool, using client for outbound requests (pass
// http.DefaultClient's equivalent with a timeout; the caller owns its
// lifecycle per §5).
func New(client *http.Client) (*tools.FunctionTool, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	paramsSchema := schema.Object(
		schema.Property("url", schema.String("The http(s) URL to fetch")).Required(),
	)
	return tools.New("web_fetch", "Fetch a URL and return its page content converted to markdown", paramsSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req request
			if err := json.Unmarshal(args, &req); err != nil {
				return nil, fmt.Errorf("web_fetch: invalid arguments: %w", err)
			}
			if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
				return nil, fmt.Errorf("web_fetch: url must start with http:// or https://")
			}
			return fetch(ctx, client, req.URL)
		})
}

func fetch(ctx context.Context, client *http.Client, url string) (result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result{}, fmt.Errorf("web_fetch: build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "agentresponses-webfetch/1.0")

	resp, err := client.Do(httpReq)
	if err != nil {
		return result{}, fmt.Errorf("web_fetch: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result{}, fmt.Errorf("web_fetch: %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodyBytes))
	if err != nil {
		return result{}, fmt.Errorf("web_fetch: read body: %w", err)
	}
	content := string(body)
	if !utf8.ValidString(content) {
		return result{}, fmt.Errorf("web_fetch: %s returned non-UTF-8 content", url)
	}

	markdown := content
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		markdown, err = convertHTMLToMarkdown(content)
		if err != nil {
			return result{}, fmt.Errorf("web_fetch: convert to markdown: %w", err)
		}
	}

	truncated := int64(len(body)) >= defaultMaxBodyBytes
	if truncated {
		markdown += "\n\n[content truncated]"
	}
	return result{URL: url, Markdown: markdown, Truncated: truncated}, nil
}

// convertHTMLToMarkdown narrows the document to its <body> before handing
// it to the converter, the same goquery.Find("body").Html() step the
// teacher's fetch.go uses for its "html" format mode — dropping <head>
// (scripts, styles, metadata) keeps the markdown free of content the model
// never needs. A body-less or unparseable document falls back to
// converting the raw HTML as-is.
func convertHTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return converter.ConvertString(html)
	}
	body, err := doc.Find("body").Html()
	if err != nil || strings.TrimSpace(body) == "" {
		return converter.ConvertString(html)
	}
	return converter.ConvertString(body)
}
