// Package search provides web search providers for the execution agent's
// web_search tool.
//
// Available providers:
//
//   - DuckDuckGo: free, no API key required (scrapes lite.duckduckgo.com)
//   - Tavily: requires API key, supports basic/advanced depth
//   - Brave: requires API key via X-Subscription-Token header
package search

import (
	"context"
	"fmt"
	"strings"
)

// Result is a single item returned by a Provider.
type Result struct {
	// Title is the result's headline.
	Title string `json:"title"`
	// URL is the result's source address.
	URL string `json:"url"`
	// Snippet is a short extract of the result's content.
	Snippet string `json:"snippet"`
}

// Provider executes a web search for a query string.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// FormatResults renders results as numbered text blocks suitable for a tool
// reply the model can read.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No results found."
	}
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n", i+1, r.Title, r.URL, r.Snippet)
		if i < len(results)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
