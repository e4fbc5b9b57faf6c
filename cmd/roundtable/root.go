package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   `roundtable "<query>"`,
	Short: "Persona-driven research pipeline",
	Long: `Roundtable answers a free-form query in four stages:

1. Decompose the query into research tasks
2. Invent a best-fit expert persona for every task
3. Execute each task with a web-search-equipped agent, one task at a time
4. Synthesize all results into a single final report

Configuration lives at ~/.config/roundtable/config.yaml, with project
overrides in .roundtable.yaml. The Anthropic API key is read from
ANTHROPIC_API_KEY.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(args[0])
		if query == "" {
			return fmt.Errorf("query must not be empty")
		}
		return runQuery(cmd.Context(), query)
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}
