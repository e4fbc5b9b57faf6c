// Package executor runs a single task through a persona-framed tool agent.
package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/eklerks/roundtable/internal/api"
	"github.com/eklerks/roundtable/pkg/models"
)

// systemPromptTemplate seeds the agent with its assigned persona: name,
// description, and comma-joined key skills.
const systemPromptTemplate = `You are %s.
%s
Your key skills: %s.

Perform the task you are given to the best of your ability. Use the web_search tool whenever you need current or factual information. When you are done, reply with your complete findings as plain text.`

// AgentRunner runs one tool-using agent conversation to completion. The
// agent may call any of its tools any number of times before producing a
// final textual answer.
type AgentRunner interface {
	Run(ctx context.Context, systemPrompt, userPrompt string) (*api.LoopResult, error)
}

// Executor executes one task at a time with its assigned persona.
type Executor struct {
	agent AgentRunner
}

// New creates an executor over the given agent runner.
func New(agent AgentRunner) *Executor {
	return &Executor{agent: agent}
}

// Execute runs the task's agent and returns its final answer. A populated
// role is a precondition: tasks reach the executor only after role
// assignment. Agent and tool errors propagate uncaught.
func (e *Executor) Execute(ctx context.Context, task models.Task) (string, error) {
	if task.Role == nil {
		return "", fmt.Errorf("task %q has no role assigned", task.Description)
	}

	system := fmt.Sprintf(systemPromptTemplate,
		task.Role.Name,
		task.Role.Description,
		strings.Join(task.Role.KeySkills, ", "))

	result, err := e.agent.Run(ctx, system, task.Description)
	if err != nil {
		return "", fmt.Errorf("run task agent: %w", err)
	}
	return result.Output, nil
}
