package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/query"
)

var (
	ownershipFormat string
)

var ownershipCmd = &cobra.Command{
	Use:   "ownership",
	Short: "Show code ownership",
	Long:  "Group authorship edges into per-entity ownership and per-author summaries",
	Run:   runOwnership,
}

func init() {
	ownershipCmd.Flags().StringVar(&ownershipFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(ownershipCmd)
}

// OwnershipResponseCLI wraps the ownership map for CLI output.
type OwnershipResponseCLI struct {
	query.OwnershipMap
}

func runOwnership(cmd *cobra.Command, args []string) {
	logger := newLogger(ownershipFormat)
	engine := mustGetEngine(logger)

	ownership, err := engine.Ownership()
	if err != nil {
		fail("building ownership map", err)
	}

	emit(&OwnershipResponseCLI{OwnershipMap: *ownership}, ownershipFormat)
}
