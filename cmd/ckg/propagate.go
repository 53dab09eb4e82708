package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/crossgraph"
	"ckg/internal/kg"
)

var (
	propagateFormat   string
	propagateProfiles string
)

var propagateCmd = &cobra.Command{
	Use:   "propagate",
	Short: "Propagate importance across graphs",
	Long: `Classify knowledge edges into cross-graph relations and run one
bidirectional importance propagation pass over the supplied entity profiles.`,
	Run: runPropagate,
}

func init() {
	propagateCmd.Flags().StringVar(&propagateFormat, "format", "json", "Output format (json, human)")
	propagateCmd.Flags().StringVar(&propagateProfiles, "profiles", "", "Path to the JSON profiles document (required)")
	_ = propagateCmd.MarkFlagRequired("profiles")
	rootCmd.AddCommand(propagateCmd)
}

// PropagateResponseCLI reports per-entity propagation outcomes.
type PropagateResponseCLI struct {
	CrossEdges      int                    `json:"crossEdges"`
	Results         []kg.PropagationResult `json:"results"`
	SkippedEntities int                    `json:"skippedEntities"`
}

func runPropagate(cmd *cobra.Command, args []string) {
	logger := newLogger(propagateFormat)
	doc, crossEdges, opts, _ := loadCrossGraph(propagateProfiles, logger)

	outcome := crossgraph.Propagate(doc.Profiles(), doc.GraphOf(), crossEdges, opts)

	emit(&PropagateResponseCLI{
		CrossEdges:      len(crossEdges),
		Results:         outcome.Results,
		SkippedEntities: outcome.SkippedEntities,
	}, propagateFormat)
}
