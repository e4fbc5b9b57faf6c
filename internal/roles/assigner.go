// Package roles assigns generated personas to tasks.
package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/eklerks/roundtable/pkg/models"
)

// assignmentPrompt is the prompt template for role generation. It receives
// the newline-joined, numbered task list.
const assignmentPrompt = `For each task below, invent the single best-suited expert persona to perform it.

Tasks:
%s

Return ONLY a JSON object with this exact structure (no other text):
{
  "tasks": [
    {
      "description": "The task description, copied verbatim",
      "role": {
        "name": "Unique, creative role name",
        "description": "Who this persona is and why it fits this task",
        "key_skills": ["skill 1", "skill 2", "skill 3"]
      }
    }
  ]
}

Rules:
- Return exactly one entry per task, in the same order as listed
- Copy each task description verbatim into the entry
- Every role name must be unique and creative, not a generic job title
- The role description must justify why the persona fits its task
- key_skills must contain exactly 3 skills, most important first`

// CompletionRunner is the slice of the API runner the assigner needs.
type CompletionRunner interface {
	RunJSON(ctx context.Context, systemPrompt, userPrompt string, target any) error
}

// Assigner generates a persona for every task in one model call.
type Assigner struct {
	runner CompletionRunner
}

// New creates a role assigner.
func New(runner CompletionRunner) *Assigner {
	return &Assigner{runner: runner}
}

// assignedTask is the JSON structure the model returns per task.
type assignedTask struct {
	Description string      `json:"description"`
	Role        models.Role `json:"role"`
}

// assignmentResponse is the envelope the model returns.
type assignmentResponse struct {
	Tasks []assignedTask `json:"tasks"`
}

// Assign sends the full task list to the model in one prompt and returns a
// new task list with roles populated. The model's output is validated
// against the input rather than trusted: the response must have one entry
// per task, entries are reconciled to input tasks by exact description match
// with positional fallback, and the input descriptions and order are always
// kept. Schema violations surface as errors.
func (a *Assigner) Assign(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
	if len(tasks) == 0 {
		return []models.Task{}, nil
	}

	var list strings.Builder
	for i, task := range tasks {
		fmt.Fprintf(&list, "%d. %s\n", i+1, task.Description)
	}
	prompt := fmt.Sprintf(assignmentPrompt, strings.TrimRight(list.String(), "\n"))

	var resp assignmentResponse
	if err := a.runner.RunJSON(ctx, "", prompt, &resp); err != nil {
		return nil, fmt.Errorf("parse role assignment response: %w", err)
	}

	if len(resp.Tasks) != len(tasks) {
		return nil, fmt.Errorf("role assignment returned %d tasks, want %d", len(resp.Tasks), len(tasks))
	}

	assigned, err := reconcile(tasks, resp.Tasks)
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// reconcile aligns response entries with input tasks. Exact description
// matches win; remaining entries are consumed positionally. The returned
// tasks keep the input IDs, descriptions, and order.
func reconcile(tasks []models.Task, entries []assignedTask) ([]models.Task, error) {
	used := make([]bool, len(entries))
	out := make([]models.Task, len(tasks))

	for i, task := range tasks {
		idx := -1
		for j, entry := range entries {
			if !used[j] && strings.TrimSpace(entry.Description) == task.Description {
				idx = j
				break
			}
		}
		if idx == -1 {
			// Positional fallback: same index if free, else first unused.
			if !used[i] {
				idx = i
			} else {
				for j := range entries {
					if !used[j] {
						idx = j
						break
					}
				}
			}
		}
		used[idx] = true

		role := entries[idx].Role
		if err := role.Validate(); err != nil {
			return nil, fmt.Errorf("role for task %d: %w", i+1, err)
		}

		out[i] = task
		out[i].Role = &role
	}
	return out, nil
}
