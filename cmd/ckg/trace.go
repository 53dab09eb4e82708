package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/crossgraph"
)

var (
	traceFormat   string
	traceProfiles string
)

var traceCmd = &cobra.Command{
	Use:   "trace <entity-id>",
	Short: "Trace an influence chain",
	Long:  "Walk cross-graph edges backwards from an entity along the strongest importance sources",
	Args:  cobra.ExactArgs(1),
	Run:   runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&traceFormat, "format", "json", "Output format (json, human)")
	traceCmd.Flags().StringVar(&traceProfiles, "profiles", "", "Path to the JSON profiles document (required)")
	_ = traceCmd.MarkFlagRequired("profiles")
	rootCmd.AddCommand(traceCmd)
}

// TraceResponseCLI wraps the influence chain for CLI output.
type TraceResponseCLI struct {
	crossgraph.InfluenceChain
}

func runTrace(cmd *cobra.Command, args []string) {
	logger := newLogger(traceFormat)
	doc, crossEdges, opts, cfg := loadCrossGraph(traceProfiles, logger)

	chain := crossgraph.TraceInfluenceChain(args[0], crossEdges, doc.Profiles(), opts,
		cfg.Propagation.MaxPropagationDepth)

	emit(&TraceResponseCLI{InfluenceChain: *chain}, traceFormat)
}
