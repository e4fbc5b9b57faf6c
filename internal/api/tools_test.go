package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/eklerks/roundtable/internal/search"
)

type stubProvider struct {
	results []search.Result
	err     error
	queries []string
}

func (s *stubProvider) Search(ctx context.Context, query string) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func TestSearchToolsDefinitions(t *testing.T) {
	tools := NewSearchTools(&stubProvider{}, 3)
	defs := tools.Definitions()
	if len(defs) != 1 {
		t.Fatalf("got %d tool definitions, want 1", len(defs))
	}
	if defs[0].OfTool.Name != "web_search" {
		t.Errorf("tool name = %q", defs[0].OfTool.Name)
	}
}

func TestSearchToolsExecute(t *testing.T) {
	provider := &stubProvider{results: []search.Result{
		{Title: "A", URL: "https://a", Snippet: "one"},
		{Title: "B", URL: "https://b", Snippet: "two"},
	}}
	tools := NewSearchTools(provider, 3)

	result, err := tools.Execute(context.Background(), "web_search", json.RawMessage(`{"query":"go"}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Execute returned tool error: %s", result.Content)
	}
	if len(provider.queries) != 1 || provider.queries[0] != "go" {
		t.Errorf("provider queries = %v", provider.queries)
	}
	if !strings.Contains(result.Content, "1. A") || !strings.Contains(result.Content, "2. B") {
		t.Errorf("unexpected content:\n%s", result.Content)
	}
}

func TestSearchToolsExecute_CapsResults(t *testing.T) {
	var many []search.Result
	for i := 0; i < 10; i++ {
		many = append(many, search.Result{Title: fmt.Sprintf("R%d", i), URL: "u", Snippet: "s"})
	}
	tools := NewSearchTools(&stubProvider{results: many}, 3)

	result, err := tools.Execute(context.Background(), "web_search", json.RawMessage(`{"query":"q"}`))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if strings.Contains(result.Content, "4.") {
		t.Errorf("more than 3 results returned:\n%s", result.Content)
	}
	if !strings.Contains(result.Content, "3. R2") {
		t.Errorf("third result missing:\n%s", result.Content)
	}
}

func TestSearchToolsExecute_ProviderErrorAborts(t *testing.T) {
	tools := NewSearchTools(&stubProvider{err: fmt.Errorf("network down")}, 3)

	_, err := tools.Execute(context.Background(), "web_search", json.RawMessage(`{"query":"q"}`))
	if err == nil {
		t.Fatal("provider error was not propagated")
	}
	if !strings.Contains(err.Error(), "network down") {
		t.Errorf("error = %v", err)
	}
}

func TestSearchToolsExecute_ModelMistakes(t *testing.T) {
	tools := NewSearchTools(&stubProvider{}, 3)

	cases := []struct {
		name  string
		tool  string
		input string
	}{
		{"unknown tool", "read_file", `{"query":"q"}`},
		{"bad input", "web_search", `not json`},
		{"empty query", "web_search", `{"query":""}`},
	}
	for _, tc := range cases {
		result, err := tools.Execute(context.Background(), tc.tool, json.RawMessage(tc.input))
		if err != nil {
			t.Errorf("%s: aborted instead of returning a tool error: %v", tc.name, err)
			continue
		}
		if !result.IsError {
			t.Errorf("%s: IsError not set", tc.name)
		}
	}
}

func TestSearchToolsDefaultCap(t *testing.T) {
	tools := NewSearchTools(&stubProvider{}, 0)
	if tools.maxResults != 3 {
		t.Errorf("default maxResults = %d, want 3", tools.maxResults)
	}
}
