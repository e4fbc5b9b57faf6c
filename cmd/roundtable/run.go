package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/eklerks/roundtable/internal/api"
	"github.com/eklerks/roundtable/internal/config"
	"github.com/eklerks/roundtable/internal/executor"
	"github.com/eklerks/roundtable/internal/planner"
	"github.com/eklerks/roundtable/internal/report"
	"github.com/eklerks/roundtable/internal/roles"
	"github.com/eklerks/roundtable/internal/search"
	"github.com/eklerks/roundtable/internal/workflow"
)

// runQuery wires the pipeline from configuration and drives one query to a
// final report on stdout. Progress goes to stderr.
func runQuery(ctx context.Context, query string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := api.NewClient(api.ClientConfig{
		Model:       cfg.Anthropic.Model,
		Temperature: cfg.Anthropic.Temperature,
		MaxTokens:   cfg.Anthropic.MaxTokens,
		APIKey:      cfg.Anthropic.APIKey,
		UseBedrock:  cfg.Anthropic.UseBedrock,
		AWSRegion:   cfg.Anthropic.AWSRegion,
		AWSProfile:  cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return err
	}

	provider, err := newSearchProvider(cfg)
	if err != nil {
		return err
	}

	runner := api.NewRunner(client)
	tools := api.NewSearchTools(provider, cfg.Search.MaxResults)
	agent := api.NewAgentLoop(client, tools, cfg.Agent.MaxIterations)

	pipe := &workflow.Pipeline{
		Planner:  planner.New(planner.NewLLMDecomposer(runner)),
		Roles:    roles.New(runner),
		Executor: executor.New(agent),
		Reporter: report.New(runner, cfg.Report.Language),
		MaxSteps: cfg.Workflow.MaxSteps,
		OnStage:  printStage,
	}

	finalReport, err := pipe.Run(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println(finalReport)

	in, out := client.Tracker().Total()
	fmt.Fprintf(os.Stderr, "%s %d calls, %d tokens in, %d tokens out\n",
		color.New(color.Faint).Sprint("usage:"), client.Tracker().Calls(), in, out)
	return nil
}

// newSearchProvider selects the web-search backend from configuration.
func newSearchProvider(cfg *config.Config) (search.Provider, error) {
	switch cfg.Search.Provider {
	case "", "duckduckgo":
		return search.NewDuckDuckGo(), nil
	case "tavily":
		return search.NewTavily(cfg.Search.TavilyAPIKey, cfg.Search.TavilyDepth), nil
	case "brave":
		return search.NewBrave(cfg.Search.BraveAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q (want duckduckgo, tavily, or brave)", cfg.Search.Provider)
	}
}

// printStage writes one progress line per stage entry to stderr.
func printStage(stage string, s workflow.State) {
	marker := color.CyanString("▸")
	switch stage {
	case workflow.StagePlanner:
		fmt.Fprintf(os.Stderr, "%s decomposing query\n", marker)
	case workflow.StageRoles:
		fmt.Fprintf(os.Stderr, "%s assigning roles to %d tasks\n", marker, len(s.Tasks))
	case workflow.StageExecutor:
		task := s.Tasks[s.CurrentTaskIndex]
		name := "(no role)"
		if task.Role != nil {
			name = task.Role.Name
		}
		fmt.Fprintf(os.Stderr, "%s [%d/%d] %s: %s\n", marker, s.CurrentTaskIndex+1, len(s.Tasks), name, task.Description)
	case workflow.StageReporter:
		fmt.Fprintf(os.Stderr, "%s writing final report\n", marker)
	}
}
