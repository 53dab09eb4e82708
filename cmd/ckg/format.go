package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *StatusResponseCLI:
		return formatStatusHuman(v)
	case *BuildResponseCLI:
		return formatBuildHuman(v)
	case *ClustersResponseCLI:
		return formatClustersHuman(v)
	case *HotspotsResponseCLI:
		return formatHotspotsHuman(v)
	case *OwnershipResponseCLI:
		return formatOwnershipHuman(v)
	case *ImpactResponseCLI:
		return formatImpactHuman(v)
	case *PropagateResponseCLI:
		return formatPropagateHuman(v)
	case *RisksResponseCLI:
		return formatRisksHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatStatusHuman(resp *StatusResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CKG v%s\n", resp.CkgVersion))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Store: %s\n", resp.StorePath))
	b.WriteString(fmt.Sprintf("Initialized: %v\n", resp.Initialized))
	b.WriteString(fmt.Sprintf("Total edges: %d\n", resp.TotalEdges))

	if len(resp.EdgeCounts) > 0 {
		b.WriteString("\nEdges by type:\n")
		for _, c := range resp.EdgeCounts {
			b.WriteString(fmt.Sprintf("  %-14s %d\n", c.Type, c.Count))
		}
	}

	if resp.LastBuild != nil {
		b.WriteString("\nLast build:\n")
		b.WriteString(fmt.Sprintf("  Run: %s\n", resp.LastBuild.RunID))
		b.WriteString(fmt.Sprintf("  Edges: %d (%d communities)\n",
			resp.LastBuild.TotalEdges, resp.LastBuild.Communities))
		b.WriteString(fmt.Sprintf("  At: %s (%dms)\n",
			resp.LastBuild.CreatedAt.Format("2006-01-02 15:04:05"),
			resp.LastBuild.DurationMs))
	} else {
		b.WriteString("\nNo build recorded yet. Run 'ckg build' first.\n")
	}

	return b.String(), nil
}

func formatBuildHuman(resp *BuildResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("Build pipeline\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, r := range resp.Reports {
		if r.Skipped {
			b.WriteString(fmt.Sprintf("  - %s: skipped (probe failed)\n", r.Name))
			continue
		}
		b.WriteString(fmt.Sprintf("  - %s: %d items in %dms\n",
			r.Name, r.Result.Items, r.Result.DurationMs))
		for _, e := range r.Result.Errors {
			b.WriteString(fmt.Sprintf("      ! %s\n", e))
		}
	}

	if resp.LastBuild != nil {
		b.WriteString(fmt.Sprintf("\nKnowledge graph: %d edges, %d communities\n",
			resp.LastBuild.TotalEdges, resp.LastBuild.Communities))
	}

	return b.String(), nil
}

func formatClustersHuman(resp *ClustersResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Clone clusters: %d\n", resp.TotalClusters))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, c := range resp.Clusters {
		b.WriteString(fmt.Sprintf("\nCluster %d (%s, %d entities)\n",
			c.ID, c.DominantType, c.Size))
		b.WriteString(fmt.Sprintf("  Similarity: %.2f  Refactoring potential: %.2f\n",
			c.AvgSimilarity, c.RefactoringPotential))
		for _, e := range c.Entities {
			b.WriteString(fmt.Sprintf("  - %s\n", e))
		}
	}

	return b.String(), nil
}

func formatHotspotsHuman(resp *HotspotsResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Debt hotspots: %d\n", resp.TotalHotspots))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for i, h := range resp.Hotspots {
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, h.EntityID))
		b.WriteString(fmt.Sprintf("   Debt: %.1f  Centrality: %.2f  Contagion: %.2f\n",
			h.TotalDebt, h.CentralityScore, h.DebtContagion))
		b.WriteString(fmt.Sprintf("   Connected debt: %.1f across %d neighbors\n",
			h.ConnectedDebt, h.NeighborCount))
		for _, r := range h.Recommendations {
			b.WriteString(fmt.Sprintf("   > %s\n", r))
		}
	}

	return b.String(), nil
}

func formatOwnershipHuman(resp *OwnershipResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Ownership map: %d entities, %d authors\n",
		len(resp.Entities), len(resp.Authors)))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, a := range resp.Authors {
		b.WriteString(fmt.Sprintf("%s owns %d entities\n", a.Author, a.TotalOwned))
		for _, p := range a.PrimaryOn {
			b.WriteString(fmt.Sprintf("  * %s (primary)\n", p))
		}
	}

	return b.String(), nil
}

func formatImpactHuman(resp *ImpactResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Impact analysis: %s\n", resp.EntityID))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Risk score: %.2f\n\n", resp.RiskScore))

	if len(resp.DirectImpact) > 0 {
		b.WriteString(fmt.Sprintf("Direct impact (%d):\n", len(resp.DirectImpact)))
		for _, d := range resp.DirectImpact {
			b.WriteString(fmt.Sprintf("  %-40s %.2f (%s)\n", d.EntityID, d.Score, d.EdgeType))
		}
		b.WriteString("\n")
	}

	if len(resp.TransitiveImpact) > 0 {
		b.WriteString(fmt.Sprintf("Transitive impact (%d):\n", len(resp.TransitiveImpact)))
		for _, tr := range resp.TransitiveImpact {
			b.WriteString(fmt.Sprintf("  %-40s %.2f (depth %d)\n",
				tr.EntityID, tr.ImpactScore, tr.PathLength))
		}
		b.WriteString("\n")
	}

	if len(resp.ReverseDependencies) > 0 {
		b.WriteString("Reverse dependencies:\n")
		for _, r := range resp.ReverseDependencies {
			b.WriteString(fmt.Sprintf("  <- %s\n", r))
		}
		b.WriteString("\n")
	}

	for _, r := range resp.Recommendations {
		b.WriteString(fmt.Sprintf("> %s\n", r))
	}

	return b.String(), nil
}

func formatPropagateHuman(resp *PropagateResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Importance propagation over %d cross-graph edges\n", resp.CrossEdges))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, r := range resp.Results {
		b.WriteString(fmt.Sprintf("%-40s %.3f -> %.3f (%+.3f, %s)\n",
			r.EntityID, r.OriginalImportance, r.PropagatedImportance,
			r.ImportanceDelta, r.Graph))
	}

	if resp.SkippedEntities > 0 {
		b.WriteString(fmt.Sprintf("\nSkipped %d entities with no importance profile\n",
			resp.SkippedEntities))
	}

	return b.String(), nil
}

func formatRisksHuman(resp *RisksResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Epistemic risks: %d\n", resp.TotalRisks))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, r := range resp.Risks {
		b.WriteString(fmt.Sprintf("\n[%s] %s (score %.2f)\n", r.RiskLevel, r.EntityID, r.RiskScore))
		b.WriteString(fmt.Sprintf("  Load: %.2f  Confidence: %.2f\n", r.EpistemicLoad, r.Confidence))
		if len(r.AffectedEntities) > 0 {
			b.WriteString(fmt.Sprintf("  Affects: %s\n", strings.Join(r.AffectedEntities, ", ")))
		}
		b.WriteString(fmt.Sprintf("  > %s\n", r.SuggestedAction))
	}

	return b.String(), nil
}
