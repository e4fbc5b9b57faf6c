package planner

import (
	"context"
	"fmt"
	"testing"
)

type stubDecomposer struct {
	descriptions []string
	err          error
	calls        int
}

func (s *stubDecomposer) Decompose(ctx context.Context, query string) ([]string, error) {
	s.calls++
	return s.descriptions, s.err
}

func TestPlan(t *testing.T) {
	stub := &stubDecomposer{descriptions: []string{"Research X", "Research Y"}}
	p := New(stub)

	tasks, err := p.Plan(context.Background(), "Compare X and Y")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Description != "Research X" || tasks[1].Description != "Research Y" {
		t.Errorf("order not preserved: %+v", tasks)
	}
	for i, task := range tasks {
		if task.ID == "" {
			t.Errorf("task %d has no ID", i)
		}
		if task.Role != nil {
			t.Errorf("task %d has a role before assignment", i)
		}
	}
	if tasks[0].ID == tasks[1].ID {
		t.Error("task IDs are not unique")
	}
}

func TestPlan_Error(t *testing.T) {
	p := New(&stubDecomposer{err: fmt.Errorf("llm unreachable")})

	if _, err := p.Plan(context.Background(), "q"); err == nil {
		t.Fatal("decomposer error was not propagated")
	}
}

func TestPlan_Empty(t *testing.T) {
	p := New(&stubDecomposer{})

	tasks, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestPlan_DeterministicDescriptions(t *testing.T) {
	// Against a deterministic decomposer, planning twice yields the same
	// descriptions in the same order.
	stub := &stubDecomposer{descriptions: []string{"A", "B", "C"}}
	p := New(stub)

	first, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Description != second[i].Description {
			t.Errorf("description %d differs: %q vs %q", i, first[i].Description, second[i].Description)
		}
	}
	if stub.calls != 2 {
		t.Errorf("decomposer called %d times, want 2", stub.calls)
	}
}
