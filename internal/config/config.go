// Package config handles configuration loading for roundtable.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for roundtable.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Search    SearchConfig    `mapstructure:"search"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Workflow  WorkflowConfig  `mapstructure:"workflow"`
	Report    ReportConfig    `mapstructure:"report"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	// UseBedrock routes API calls through AWS Bedrock instead of the
	// direct API.
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// SearchConfig holds web-search tool settings.
type SearchConfig struct {
	// Provider selects the search backend: duckduckgo, tavily, or brave.
	Provider string `mapstructure:"provider"`
	// MaxResults caps how many results the tool returns per query.
	MaxResults   int    `mapstructure:"max_results"`
	TavilyAPIKey string `mapstructure:"tavily_api_key"`
	TavilyDepth  string `mapstructure:"tavily_depth"`
	BraveAPIKey  string `mapstructure:"brave_api_key"`
}

// AgentConfig holds execution-agent settings.
type AgentConfig struct {
	// MaxIterations caps API round-trips inside one task agent run.
	MaxIterations int `mapstructure:"max_iterations"`
}

// WorkflowConfig holds workflow engine settings.
type WorkflowConfig struct {
	// MaxSteps is the hard cap on state transitions per run. Exceeding it
	// aborts the run.
	MaxSteps int `mapstructure:"max_steps"`
}

// ReportConfig holds final report settings.
type ReportConfig struct {
	// Language is the output language of the final report.
	Language string `mapstructure:"language"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, TAVILY_API_KEY, BRAVE_API_KEY)
// 2. Project config (.roundtable.yaml in current directory or a parent)
// 3. User config (~/.config/roundtable/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		pv := viper.New()
		pv.SetConfigFile(projectConfig)
		if err := pv.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(pv.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("search.tavily_api_key", "TAVILY_API_KEY")
	v.BindEnv("search.brave_api_key", "BRAVE_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	cfg.Search.TavilyAPIKey = os.ExpandEnv(cfg.Search.TavilyAPIKey)
	cfg.Search.BraveAPIKey = os.ExpandEnv(cfg.Search.BraveAPIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	return cfg, nil
}

// Default returns a Config with default values.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults unmarshal cleanly; ignore the impossible error.
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.temperature", 0.7)
	v.SetDefault("anthropic.max_tokens", 8192)
	v.SetDefault("anthropic.use_bedrock", false)
	v.SetDefault("anthropic.aws_region", "")
	v.SetDefault("anthropic.aws_profile", "")

	v.SetDefault("search.provider", "duckduckgo")
	v.SetDefault("search.max_results", 3)
	v.SetDefault("search.tavily_api_key", "")
	v.SetDefault("search.tavily_depth", "basic")
	v.SetDefault("search.brave_api_key", "")

	v.SetDefault("agent.max_iterations", 50)
	v.SetDefault("workflow.max_steps", 1000)
	v.SetDefault("report.language", "English")
}

// userConfigDir returns the XDG config directory for roundtable.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "roundtable")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "roundtable")
	}
	return filepath.Join(home, ".config", "roundtable")
}

// findProjectConfig searches for .roundtable.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(cwd, ".roundtable.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}
	return ""
}
