package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// ToolSet supplies tool schemas and executes tool calls for an agent loop.
type ToolSet interface {
	// Definitions returns the tool schemas advertised to the model.
	Definitions() []anthropic.ToolUnionParam
	// Execute runs one tool call. A ToolResult with IsError set is fed
	// back to the model (its mistake to correct); a non-nil error aborts
	// the whole run.
	Execute(ctx context.Context, name string, input json.RawMessage) (ToolResult, error)
}

// ToolResult is the outcome of a single tool execution.
type ToolResult struct {
	Content string
	IsError bool
}

// StreamEvent represents an event during agent execution.
type StreamEvent struct {
	Type    string // "text", "tool_use", "tool_result", "done", "error"
	Content string
	Tool    string
	Input   json.RawMessage
}

// LoopResult contains the results of an agent loop execution.
type LoopResult struct {
	Output     string
	TokensIn   int64
	TokensOut  int64
	ToolCalls  int
	Iterations int
}

// AgentLoop manages the API call and tool execution cycle for one task:
// the model may call any of the provided tools any number of times before
// producing a final textual answer.
type AgentLoop struct {
	client        *Client
	tools         ToolSet
	onStream      func(StreamEvent)
	maxIterations int
}

// NewAgentLoop creates an agent loop over the given tool set. maxIterations
// caps API round-trips per run; 0 means the default of 50.
func NewAgentLoop(client *Client, tools ToolSet, maxIterations int) *AgentLoop {
	if maxIterations <= 0 {
		maxIterations = 50
	}
	return &AgentLoop{client: client, tools: tools, maxIterations: maxIterations}
}

// SetStreamHandler sets a callback for streaming events during execution.
func (l *AgentLoop) SetStreamHandler(fn func(StreamEvent)) {
	l.onStream = fn
}

func (l *AgentLoop) emit(event StreamEvent) {
	if l.onStream != nil {
		l.onStream(event)
	}
}

// Run executes the agent loop with the given prompts and returns the final
// assistant message once the model stops calling tools.
func (l *AgentLoop) Run(ctx context.Context, systemPrompt, userPrompt string) (*LoopResult, error) {
	result := &LoopResult{}

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
	}

	for result.Iterations < l.maxIterations {
		result.Iterations++

		params := l.client.messageParams(systemPrompt, messages)
		params.Tools = l.tools.Definitions()

		resp, err := l.client.sdk().Messages.New(ctx, params)
		if err != nil {
			l.emit(StreamEvent{Type: "error", Content: err.Error()})
			return result, fmt.Errorf("API call failed: %w", err)
		}

		result.TokensIn += resp.Usage.InputTokens
		result.TokensOut += resp.Usage.OutputTokens
		l.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

		var assistantBlocks []anthropic.ContentBlockParamUnion
		var toolResultBlocks []anthropic.ContentBlockParamUnion
		var textOutput string

		for _, block := range resp.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				textOutput += variant.Text
				l.emit(StreamEvent{Type: "text", Content: variant.Text})
				assistantBlocks = append(assistantBlocks, anthropic.NewTextBlock(variant.Text))

			case anthropic.ToolUseBlock:
				result.ToolCalls++
				l.emit(StreamEvent{Type: "tool_use", Tool: variant.Name, Input: variant.Input})
				assistantBlocks = append(assistantBlocks,
					anthropic.NewToolUseBlock(variant.ID, variant.Input, variant.Name))

				toolResult, err := l.tools.Execute(ctx, variant.Name, variant.Input)
				if err != nil {
					l.emit(StreamEvent{Type: "error", Content: err.Error()})
					return result, fmt.Errorf("tool %s: %w", variant.Name, err)
				}
				l.emit(StreamEvent{Type: "tool_result", Tool: variant.Name, Content: truncateForDisplay(toolResult.Content)})

				toolResultBlocks = append(toolResultBlocks,
					anthropic.NewToolResultBlock(variant.ID, toolResult.Content, toolResult.IsError))
			}
		}

		if resp.StopReason == anthropic.StopReasonEndTurn {
			result.Output = textOutput
			l.emit(StreamEvent{Type: "done"})
			return result, nil
		}

		messages = append(messages, anthropic.NewAssistantMessage(assistantBlocks...))
		if len(toolResultBlocks) > 0 {
			messages = append(messages, anthropic.NewUserMessage(toolResultBlocks...))
		}
	}

	return result, fmt.Errorf("max iterations (%d) reached", l.maxIterations)
}

func truncateForDisplay(s string) string {
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
