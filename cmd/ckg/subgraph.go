package main

import (
	"strings"

	"github.com/spf13/cobra"

	"ckg/internal/kg"
)

var (
	subgraphFormat string
	subgraphDepth  int
	subgraphTypes  string
)

var subgraphCmd = &cobra.Command{
	Use:   "subgraph <entity-id>",
	Short: "Extract a knowledge subgraph",
	Long:  "Breadth-first expansion of knowledge edges around an entity, optionally filtered by edge type",
	Args:  cobra.ExactArgs(1),
	Run:   runSubgraph,
}

func init() {
	subgraphCmd.Flags().StringVar(&subgraphFormat, "format", "json", "Output format (json, human)")
	subgraphCmd.Flags().IntVar(&subgraphDepth, "depth", 2, "Expansion depth")
	subgraphCmd.Flags().StringVar(&subgraphTypes, "types", "", "Comma-separated edge types to include (default: all)")
	rootCmd.AddCommand(subgraphCmd)
}

// SubgraphResponseCLI lists the edges reachable from the root entity.
type SubgraphResponseCLI struct {
	RootID     string    `json:"rootId"`
	Depth      int       `json:"depth"`
	TotalEdges int       `json:"totalEdges"`
	Edges      []kg.Edge `json:"edges"`
}

func runSubgraph(cmd *cobra.Command, args []string) {
	logger := newLogger(subgraphFormat)
	engine := mustGetEngine(logger)

	var edgeTypes []kg.EdgeType
	if subgraphTypes != "" {
		for _, t := range strings.Split(subgraphTypes, ",") {
			edgeTypes = append(edgeTypes, kg.EdgeType(strings.TrimSpace(t)))
		}
	}

	edges, err := engine.Subgraph(args[0], subgraphDepth, edgeTypes)
	if err != nil {
		fail("extracting subgraph", err)
	}

	emit(&SubgraphResponseCLI{
		RootID:     args[0],
		Depth:      subgraphDepth,
		TotalEdges: len(edges),
		Edges:      edges,
	}, subgraphFormat)
}
