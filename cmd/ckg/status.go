package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"ckg/internal/storage"
	"ckg/internal/version"
)

var (
	statusFormat string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show CKG store status",
	Long:  "Display the state of the graph store, edge counts by type, and the last build summary",
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(statusCmd)
}

// EdgeCountCLI is one edge type's count in the status output.
type EdgeCountCLI struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// StatusResponseCLI contains the store status for CLI output.
type StatusResponseCLI struct {
	CkgVersion  string                `json:"ckgVersion"`
	StorePath   string                `json:"storePath"`
	Initialized bool                  `json:"initialized"`
	TotalEdges  int                   `json:"totalEdges"`
	EdgeCounts  []EdgeCountCLI        `json:"edgeCounts"`
	LastBuild   *storage.BuildSummary `json:"lastBuild,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(statusFormat)
	db, _ := mustOpenStore(logger)

	counts, err := db.CountKnowledgeEdgesByType()
	if err != nil {
		fail("counting edges", err)
	}

	lastBuild, err := db.GetLastBuildSummary()
	if err != nil {
		fail("reading build summary", err)
	}

	edgeCounts := make([]EdgeCountCLI, 0, len(counts))
	total := 0
	for edgeType, count := range counts {
		edgeCounts = append(edgeCounts, EdgeCountCLI{Type: string(edgeType), Count: count})
		total += count
	}
	sort.Slice(edgeCounts, func(i, j int) bool {
		if edgeCounts[i].Count != edgeCounts[j].Count {
			return edgeCounts[i].Count > edgeCounts[j].Count
		}
		return edgeCounts[i].Type < edgeCounts[j].Type
	})

	emit(&StatusResponseCLI{
		CkgVersion:  version.Version,
		StorePath:   db.Path(),
		Initialized: db.IsInitialized(),
		TotalEdges:  total,
		EdgeCounts:  edgeCounts,
		LastBuild:   lastBuild,
	}, statusFormat)

	if statusFormat == "human" {
		fmt.Printf("(Query took %dms)\n", time.Since(start).Milliseconds())
	}
}
