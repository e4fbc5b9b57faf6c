package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eklerks/roundtable/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the effective configuration as YAML, after merging defaults,
the user config (~/.config/roundtable/config.yaml), any project
.roundtable.yaml, and environment variables. API keys are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return yaml.NewEncoder(os.Stdout).Encode(maskedConfig(cfg))
	},
}

// maskedConfig renders the config as a YAML-friendly tree with secrets
// masked.
func maskedConfig(cfg *config.Config) map[string]any {
	return map[string]any{
		"anthropic": map[string]any{
			"api_key":     mask(cfg.Anthropic.APIKey),
			"model":       cfg.Anthropic.Model,
			"temperature": cfg.Anthropic.Temperature,
			"max_tokens":  cfg.Anthropic.MaxTokens,
			"use_bedrock": cfg.Anthropic.UseBedrock,
			"aws_region":  cfg.Anthropic.AWSRegion,
			"aws_profile": cfg.Anthropic.AWSProfile,
		},
		"search": map[string]any{
			"provider":       cfg.Search.Provider,
			"max_results":    cfg.Search.MaxResults,
			"tavily_api_key": mask(cfg.Search.TavilyAPIKey),
			"tavily_depth":   cfg.Search.TavilyDepth,
			"brave_api_key":  mask(cfg.Search.BraveAPIKey),
		},
		"agent": map[string]any{
			"max_iterations": cfg.Agent.MaxIterations,
		},
		"workflow": map[string]any{
			"max_steps": cfg.Workflow.MaxSteps,
		},
		"report": map[string]any{
			"language": cfg.Report.Language,
		},
	}
}

func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return "****"
}
