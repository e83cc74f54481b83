package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wikiqual/wikiqual/internal/log"
	"github.com/wikiqual/wikiqual/internal/rules"
)

// NewRulesCmd creates the rules command.
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [rule-file]",
		Short: "Validate and list grammar rules",
		Long: `Rules loads a grammar rule file, validates every pattern, and lists the
rules that survive. Malformed or unsafe patterns are reported and skipped,
mirroring what the analyze command would do with the same file.

Without an argument the built-in rule set is listed.

Examples:
  # List the built-in rules
  wikiqual rules

  # Validate and list a custom rule file
  wikiqual rules rules.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRulesCmd,
	}

	return cmd
}

// runRulesCmd executes the rules command.
func runRulesCmd(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))

	result, err := rules.Load(path, logger)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	out := cmd.OutOrStdout()

	source := "built-in"
	if path != "" {
		source = path
	}
	fmt.Fprintf(out, "Rule set: %s\n", source)
	fmt.Fprintf(out, "Valid rules: %d\n", len(result.Rules))
	if result.Skipped > 0 {
		fmt.Fprintf(out, "Skipped rules: %d (malformed or unsafe patterns)\n", result.Skipped)
	}
	fmt.Fprintln(out)

	for _, r := range result.Rules {
		fmt.Fprintf(out, "  %-24s %s\n", r.Name, r.Description)
		if r.Suggestion != "" {
			fmt.Fprintf(out, "  %-24s suggestion: %s\n", "", r.Suggestion)
		}
	}

	return nil
}
