package api

import (
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(100, 50)
	tracker.Add(10, 5)

	in, out := tracker.Total()
	if in != 110 || out != 55 {
		t.Errorf("Total = (%d, %d), want (110, 55)", in, out)
	}
	if tracker.Calls() != 2 {
		t.Errorf("Calls = %d, want 2", tracker.Calls())
	}
}

func TestTranslateModelForBedrock(t *testing.T) {
	got := translateModelForBedrock(anthropic.ModelClaudeSonnet4_5_20250929)
	if !strings.HasPrefix(string(got), "us.anthropic.") {
		t.Errorf("known model not translated: %s", got)
	}

	// Already-Bedrock names pass through.
	already := anthropic.Model("us.anthropic.claude-sonnet-4-5-20250929-v1:0")
	if translateModelForBedrock(already) != already {
		t.Error("bedrock-format model was re-translated")
	}

	// Unknown models pass through untouched.
	custom := anthropic.Model("some-custom-model")
	if translateModelForBedrock(custom) != custom {
		t.Error("unknown model was translated")
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatal("NewClient succeeded without an API key")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(ClientConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if c.Model() == "" {
		t.Error("no default model")
	}
	if c.maxTokens != 8192 {
		t.Errorf("maxTokens = %d, want 8192", c.maxTokens)
	}
}
