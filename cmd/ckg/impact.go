package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/query"
)

var (
	impactFormat string
)

var impactCmd = &cobra.Command{
	Use:   "impact <entity-id>",
	Short: "Analyze change impact",
	Long:  "Compute direct, transitive, and reverse change impact for an entity with a blended risk score",
	Args:  cobra.ExactArgs(1),
	Run:   runImpact,
}

func init() {
	impactCmd.Flags().StringVar(&impactFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(impactCmd)
}

// ImpactResponseCLI wraps the impact analysis for CLI output.
type ImpactResponseCLI struct {
	query.ImpactAnalysis
}

func runImpact(cmd *cobra.Command, args []string) {
	logger := newLogger(impactFormat)
	engine := mustGetEngine(logger)

	analysis, err := engine.Impact(args[0])
	if err != nil {
		fail("analyzing impact", err)
	}

	emit(&ImpactResponseCLI{ImpactAnalysis: *analysis}, impactFormat)
}
