package main

import (
	"time"

	"github.com/spf13/cobra"

	"ckg/internal/crossgraph"
	"ckg/internal/kg"
)

var (
	risksFormat   string
	risksProfiles string
	risksMinScore float64
)

var risksCmd = &cobra.Command{
	Use:   "risks",
	Short: "Detect epistemic risks",
	Long:  "Flag claims that many conclusions depend on but whose confidence is low",
	Run:   runRisks,
}

func init() {
	risksCmd.Flags().StringVar(&risksFormat, "format", "json", "Output format (json, human)")
	risksCmd.Flags().StringVar(&risksProfiles, "profiles", "", "Path to the JSON profiles document (required)")
	risksCmd.Flags().Float64Var(&risksMinScore, "min-score", -1, "Minimum risk score to report (default: from config)")
	_ = risksCmd.MarkFlagRequired("profiles")
	rootCmd.AddCommand(risksCmd)
}

// RisksResponseCLI lists detected epistemic risks.
type RisksResponseCLI struct {
	TotalRisks int                `json:"totalRisks"`
	Risks      []kg.EpistemicRisk `json:"risks"`
}

func runRisks(cmd *cobra.Command, args []string) {
	logger := newLogger(risksFormat)
	doc, _, _, cfg := loadCrossGraph(risksProfiles, logger)

	minScore := cfg.Risk.MinRiskThreshold
	if risksMinScore >= 0 {
		minScore = risksMinScore
	}

	risks := crossgraph.DetectRisks(doc.Profiles(), doc.Confidences(), minScore, time.Now().UTC())

	emit(&RisksResponseCLI{TotalRisks: len(risks), Risks: risks}, risksFormat)
}
