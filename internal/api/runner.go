package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// Runner provides text-in/text-out API calls without tool execution. This is
// what role assignment, decomposition, and report synthesis use.
type Runner struct {
	client *Client
}

// NewRunner creates a new API runner.
func NewRunner(client *Client) *Runner {
	return &Runner{client: client}
}

// Run executes a prompt and returns the text response.
func (r *Runner) Run(ctx context.Context, prompt string) (string, error) {
	return r.RunWithSystem(ctx, "", prompt)
}

// RunWithSystem executes a prompt with a system message.
func (r *Runner) RunWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
	}

	resp, err := r.client.sdk().Messages.New(ctx, r.client.messageParams(systemPrompt, messages))
	if err != nil {
		return "", fmt.Errorf("API call failed: %w", err)
	}

	r.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}
	return result.String(), nil
}

// RunJSON executes a prompt and parses the JSON in the response into target.
// Text around the JSON value is tolerated; a response with no JSON, or JSON
// that does not match the target's shape, is an error.
func (r *Runner) RunJSON(ctx context.Context, systemPrompt, userPrompt string, target any) error {
	response, err := r.RunWithSystem(ctx, systemPrompt, userPrompt)
	if err != nil {
		return err
	}
	return DecodeJSON(response, target)
}

// DecodeJSON extracts the outermost JSON array or object from a text
// response and unmarshals it into target.
func DecodeJSON(response string, target any) error {
	raw, err := extractJSON(response)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("unmarshal JSON response: %w", err)
	}
	return nil
}

// extractJSON finds the outermost JSON array or object in a response that
// may carry prose before or after it.
func extractJSON(response string) (string, error) {
	arrStart := strings.Index(response, "[")
	objStart := strings.Index(response, "{")

	start, end := -1, -1
	switch {
	case arrStart >= 0 && (objStart < 0 || arrStart < objStart):
		start, end = arrStart, strings.LastIndex(response, "]")
	case objStart >= 0:
		start, end = objStart, strings.LastIndex(response, "}")
	}
	if start < 0 || end <= start {
		preview := response
		if len(preview) > 500 {
			preview = preview[:500] + "... (truncated)"
		}
		return "", fmt.Errorf("no JSON found in response (got %d chars): %q", len(response), preview)
	}
	return response[start : end+1], nil
}
