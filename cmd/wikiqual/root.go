// Package main provides the entry point for the wikiqual CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wikiqual.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikiqual",
		Short: "Quality scoring tool for encyclopedia articles",
		Long: `wikiqual scores encyclopedia article documents against nine quality axes:
structure, references, maintenance, links, media, language, grammar,
revision stability, and cross-project integration.

Each article receives a 0-100 total score, a quality tier, and an ordered
list of improvement notes. Articles are supplied as JSON documents produced
by an external extractor.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
