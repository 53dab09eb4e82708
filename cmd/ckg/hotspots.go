package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/query"
)

var (
	hotspotsFormat string
)

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots",
	Short: "Rank technical debt hotspots",
	Long:  "Rank indebted entities by debt weighted with graph centrality, including debt contagion",
	Run:   runHotspots,
}

func init() {
	hotspotsCmd.Flags().StringVar(&hotspotsFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(hotspotsCmd)
}

// HotspotsResponseCLI lists ranked debt hotspots.
type HotspotsResponseCLI struct {
	TotalHotspots int                 `json:"totalHotspots"`
	Hotspots      []query.DebtHotspot `json:"hotspots"`
}

func runHotspots(cmd *cobra.Command, args []string) {
	logger := newLogger(hotspotsFormat)
	engine := mustGetEngine(logger)

	hotspots, err := engine.DebtHotspots()
	if err != nil {
		fail("ranking hotspots", err)
	}

	emit(&HotspotsResponseCLI{TotalHotspots: len(hotspots), Hotspots: hotspots}, hotspotsFormat)
}
