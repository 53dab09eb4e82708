package main

import (
	"github.com/spf13/cobra"

	"ckg/internal/query"
)

var (
	clustersFormat string
)

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Detect clone clusters",
	Long:  "Group clone_of edges into communities and rank them by refactoring potential",
	Run:   runClusters,
}

func init() {
	clustersCmd.Flags().StringVar(&clustersFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(clustersCmd)
}

// ClustersResponseCLI lists detected clone clusters.
type ClustersResponseCLI struct {
	TotalClusters int                  `json:"totalClusters"`
	Clusters      []query.CloneCluster `json:"clusters"`
}

func runClusters(cmd *cobra.Command, args []string) {
	logger := newLogger(clustersFormat)
	engine := mustGetEngine(logger)

	clusters, err := engine.CloneClusters()
	if err != nil {
		fail("detecting clone clusters", err)
	}

	emit(&ClustersResponseCLI{TotalClusters: len(clusters), Clusters: clusters}, clustersFormat)
}
