package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ckg",
	Short: "CKG - Code Knowledge Graph",
	Long: `CKG (Code Knowledge Graph) synthesizes a typed, multi-relational knowledge
graph from heterogeneous code signals (structure, clones, co-change history,
authorship, technical debt) and answers analytical queries over it: clone
clusters, debt hotspots, ownership, impact, timelines, cross-graph importance
propagation, and epistemic risk detection.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("CKG version {{.Version}}\n")
}
