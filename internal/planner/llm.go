package planner

import (
	"context"
	"fmt"
	"strings"
)

// decompositionPrompt is the prompt template for query decomposition.
const decompositionPrompt = `Break this query into a small number of focused research sub-tasks. Each sub-task should cover one distinct sub-problem of the query, and together they should cover the whole query.

Query:
%s

Return ONLY a JSON array of sub-task description strings (no other text):
["First sub-task description", "Second sub-task description"]

Guidelines:
- Each description is a single, self-contained instruction
- Order sub-tasks so that earlier results can inform later ones
- Prefer 2-5 sub-tasks; never pad with redundant ones
- Do not include the final synthesis as a sub-task; that happens separately`

// CompletionRunner is the slice of the API runner the decomposer needs.
type CompletionRunner interface {
	RunJSON(ctx context.Context, systemPrompt, userPrompt string, target any) error
}

// LLMDecomposer asks the model to split a query into sub-task descriptions.
type LLMDecomposer struct {
	runner CompletionRunner
}

// NewLLMDecomposer creates an LLM-backed decomposer.
func NewLLMDecomposer(runner CompletionRunner) *LLMDecomposer {
	return &LLMDecomposer{runner: runner}
}

// Decompose returns the model's sub-task descriptions in order. An empty or
// malformed response is an error.
func (d *LLMDecomposer) Decompose(ctx context.Context, query string) ([]string, error) {
	prompt := fmt.Sprintf(decompositionPrompt, query)

	var raw []string
	if err := d.runner.RunJSON(ctx, "", prompt, &raw); err != nil {
		return nil, fmt.Errorf("parse decomposition response: %w", err)
	}

	descriptions := make([]string, 0, len(raw))
	for _, desc := range raw {
		if trimmed := strings.TrimSpace(desc); trimmed != "" {
			descriptions = append(descriptions, trimmed)
		}
	}
	if len(descriptions) == 0 {
		return nil, fmt.Errorf("decomposition returned no tasks")
	}
	return descriptions, nil
}
