package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// fakeRunner returns a canned response string parsed as JSON into the target,
// mimicking api.Runner.RunJSON.
type fakeRunner struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeRunner) RunJSON(ctx context.Context, systemPrompt, userPrompt string, target any) error {
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.response), target)
}

func TestLLMDecompose(t *testing.T) {
	runner := &fakeRunner{response: `["Research X", " Research Y ", ""]`}
	d := NewLLMDecomposer(runner)

	got, err := d.Decompose(context.Background(), "Compare X and Y")
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	want := []string{"Research X", "Research Y"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("description %d = %q, want %q", i, got[i], want[i])
		}
	}

	if len(runner.prompts) != 1 || !strings.Contains(runner.prompts[0], "Compare X and Y") {
		t.Errorf("query missing from prompt: %v", runner.prompts)
	}
}

func TestLLMDecompose_Empty(t *testing.T) {
	d := NewLLMDecomposer(&fakeRunner{response: `[]`})
	if _, err := d.Decompose(context.Background(), "q"); err == nil {
		t.Fatal("empty decomposition accepted")
	}
}

func TestLLMDecompose_RunnerError(t *testing.T) {
	d := NewLLMDecomposer(&fakeRunner{err: fmt.Errorf("rate limited")})
	if _, err := d.Decompose(context.Background(), "q"); err == nil {
		t.Fatal("runner error not propagated")
	}
}
