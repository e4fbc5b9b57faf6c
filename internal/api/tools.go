package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/eklerks/roundtable/internal/search"
)

// SearchTools exposes a single web_search tool backed by a search.Provider.
// It is the only tool the execution agent gets.
type SearchTools struct {
	provider   search.Provider
	maxResults int
}

// NewSearchTools creates the web_search tool set. maxResults caps results
// per query; 0 means the default of 3.
func NewSearchTools(provider search.Provider, maxResults int) *SearchTools {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &SearchTools{provider: provider, maxResults: maxResults}
}

// Definitions returns the web_search tool schema.
func (s *SearchTools) Definitions() []anthropic.ToolUnionParam {
	return []anthropic.ToolUnionParam{
		{
			OfTool: &anthropic.ToolParam{
				Name: "web_search",
				Description: anthropic.String(fmt.Sprintf(
					"Search the web for current information. Returns up to %d results with title, URL, and snippet.", s.maxResults)),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]interface{}{
						"query": map[string]interface{}{
							"type":        "string",
							"description": "The search query",
						},
					},
					Required: []string{"query"},
				},
			},
		},
	}
}

// Execute runs one tool call. Malformed calls are fed back to the model to
// correct; a provider failure aborts the run.
func (s *SearchTools) Execute(ctx context.Context, name string, input json.RawMessage) (ToolResult, error) {
	if name != "web_search" {
		return ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return ToolResult{Content: fmt.Sprintf("invalid web_search input: %v", err), IsError: true}, nil
	}
	if args.Query == "" {
		return ToolResult{Content: "web_search requires a non-empty query", IsError: true}, nil
	}

	results, err := s.provider.Search(ctx, args.Query)
	if err != nil {
		return ToolResult{}, fmt.Errorf("web search: %w", err)
	}
	if len(results) > s.maxResults {
		results = results[:s.maxResults]
	}
	return ToolResult{Content: search.FormatResults(results)}, nil
}
