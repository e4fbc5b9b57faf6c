// Package report synthesizes the final answer from per-task results.
package report

import (
	"context"
	"fmt"
	"strings"
)

// reportPrompt is the synthesis prompt template. It receives the original
// query, the labeled per-task results, and the output language.
const reportPrompt = `Write a final report answering the query below, using the collected information.

Query:
%s

Collected information:
%s

Instructions:
- Integrate all of the information above
- Answer the query directly
- Cite the key findings from each source as "Info N"
- End with a clear conclusion
- Keep the report between 250 and 300 words
- Write the report in %s`

// CompletionRunner is the slice of the API runner the reporter needs.
type CompletionRunner interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// Reporter asks the model to synthesize one coherent answer from the
// accumulated per-task results.
type Reporter struct {
	runner   CompletionRunner
	language string
}

// New creates a reporter. Language defaults to English.
func New(runner CompletionRunner, language string) *Reporter {
	if language == "" {
		language = "English"
	}
	return &Reporter{runner: runner, language: language}
}

// Report builds the synthesis prompt and returns the raw text completion.
// Results are labeled "Info 1".."Info N" in task order. LLM errors
// propagate unchanged.
func (r *Reporter) Report(ctx context.Context, query string, results []string) (string, error) {
	prompt := buildPrompt(query, results, r.language)

	out, err := r.runner.Run(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("synthesize report: %w", err)
	}
	return out, nil
}

func buildPrompt(query string, results []string, language string) string {
	var info strings.Builder
	if len(results) == 0 {
		info.WriteString("(no information was collected)")
	}
	for i, result := range results {
		fmt.Fprintf(&info, "Info %d:\n%s\n", i+1, result)
		if i < len(results)-1 {
			info.WriteString("\n")
		}
	}
	return fmt.Sprintf(reportPrompt, query, strings.TrimRight(info.String(), "\n"), language)
}
