package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eklerks/roundtable/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("roundtable version %s\n", version.Get())
	},
}
