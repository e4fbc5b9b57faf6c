// Package workflow implements the plan → assign → execute → report state
// machine that drives one query to a final report.
package workflow

import (
	"context"
	"fmt"
)

// End is the terminal state name.
const End = "end"

// DefaultMaxSteps is the default cap on state transitions per run.
const DefaultMaxSteps = 1000

// Node is one workflow state. Run computes a partial update against the
// current state; Next names the following state, after the update has been
// merged.
type Node struct {
	Name string
	Run  func(ctx context.Context, s State) (Delta, error)
	Next func(s State) string
}

// Machine sequences nodes over a single State until it reaches End.
type Machine struct {
	nodes    map[string]Node
	entry    string
	maxSteps int
}

// NewMachine builds a machine with the given entry node. maxSteps caps
// total state transitions; 0 means DefaultMaxSteps.
func NewMachine(entry string, nodes []Node, maxSteps int) (*Machine, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	byName := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if n.Name == "" || n.Name == End {
			return nil, fmt.Errorf("invalid node name %q", n.Name)
		}
		if _, dup := byName[n.Name]; dup {
			return nil, fmt.Errorf("duplicate node %q", n.Name)
		}
		if n.Run == nil || n.Next == nil {
			return nil, fmt.Errorf("node %q is missing Run or Next", n.Name)
		}
		byName[n.Name] = n
	}
	if _, ok := byName[entry]; !ok {
		return nil, fmt.Errorf("entry node %q not defined", entry)
	}
	return &Machine{nodes: byName, entry: entry, maxSteps: maxSteps}, nil
}

// Run drives the machine from the entry node to End and returns the final
// state. Any node error, an unknown transition target, or exceeding the
// step cap aborts the run; nothing partial is returned.
func (m *Machine) Run(ctx context.Context, initial State) (State, error) {
	s := initial
	current := m.entry

	for steps := 0; current != End; steps++ {
		if steps >= m.maxSteps {
			return State{}, fmt.Errorf("workflow exceeded %d transitions without completing", m.maxSteps)
		}
		if err := ctx.Err(); err != nil {
			return State{}, err
		}

		node, ok := m.nodes[current]
		if !ok {
			return State{}, fmt.Errorf("workflow reached unknown state %q", current)
		}

		delta, err := node.Run(ctx, s)
		if err != nil {
			return State{}, fmt.Errorf("%s: %w", current, err)
		}
		s = apply(s, delta)
		current = node.Next(s)
	}

	return s, nil
}
