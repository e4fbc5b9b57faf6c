// Package planner turns a user query into an ordered task list.
package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eklerks/roundtable/pkg/models"
)

// Decomposer splits a query into an ordered list of sub-task descriptions.
// The decomposition strategy is opaque; the contract is a sequence of short
// natural-language descriptions covering the query's sub-problems.
type Decomposer interface {
	Decompose(ctx context.Context, query string) ([]string, error)
}

// Planner wraps a Decomposer and converts its output into Task records.
type Planner struct {
	decomposer Decomposer
}

// New creates a Planner over the given decomposer.
func New(d Decomposer) *Planner {
	return &Planner{decomposer: d}
}

// Plan decomposes the query into tasks, preserving the decomposer's order.
// Roles are left unset; they are populated later by role assignment.
// Decomposition errors propagate unchanged; there is no retry.
func (p *Planner) Plan(ctx context.Context, query string) ([]models.Task, error) {
	descriptions, err := p.decomposer.Decompose(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("decompose query: %w", err)
	}

	tasks := make([]models.Task, len(descriptions))
	for i, desc := range descriptions {
		tasks[i] = models.Task{
			ID:          uuid.New().String(),
			Description: desc,
		}
	}
	return tasks, nil
}
