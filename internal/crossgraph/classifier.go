// Package crossgraph classifies knowledge edges that span the four
// conceptual graphs (code, rationale, epistemic, org), propagates
// importance across them with type-specific damping, detects epistemic
// risk, and traces influence chains.
package crossgraph

import (
	"time"

	"ckg/internal/kg"
)

// Classify maps knowledge edges whose endpoints live in different
// graphs to cross-graph edges. Same-graph edges, edges with unmapped
// endpoints, and edge types without a classification are dropped; this
// component never fabricates relationships.
func Classify(edges []kg.Edge, graphOf map[string]kg.GraphType, now time.Time) []kg.CrossGraphEdge {
	result := make([]kg.CrossGraphEdge, 0, len(edges))
	for _, edge := range edges {
		sourceGraph, ok := graphOf[edge.SourceID]
		if !ok {
			continue
		}
		targetGraph, ok := graphOf[edge.TargetID]
		if !ok {
			continue
		}
		if sourceGraph == targetGraph {
			continue
		}

		crossType, ok := classify(sourceGraph, targetGraph, edge.Type)
		if !ok {
			continue
		}

		result = append(result, kg.CrossGraphEdge{
			ID:             kg.CrossEdgeID(edge.SourceID, edge.TargetID, crossType),
			SourceGraph:    sourceGraph,
			TargetGraph:    targetGraph,
			SourceEntityID: edge.SourceID,
			TargetEntityID: edge.TargetID,
			Type:           crossType,
			Weight:         edge.Weight,
			Confidence:     edge.Confidence,
			ComputedAt:     now,
		})
	}
	return result
}

// classify is the fixed (sourceGraph, targetGraph, edgeType) table.
func classify(source, target kg.GraphType, edgeType kg.EdgeType) (kg.CrossGraphEdgeType, bool) {
	switch {
	case source == kg.GraphCode && target == kg.GraphRationale:
		switch edgeType {
		case kg.EdgeDocuments, kg.EdgePartOf:
			return kg.CrossDocumentedByDecision, true
		case kg.EdgeDependsOn:
			return kg.CrossConstrainedByDecision, true
		}
	case source == kg.GraphRationale && target == kg.GraphCode:
		switch edgeType {
		case kg.EdgeDocuments, kg.EdgeEvolvedFrom:
			return kg.CrossEvidencedByCode, true
		case kg.EdgeDependsOn:
			return kg.CrossDecidedBy, true
		}
	case source == kg.GraphCode && target == kg.GraphEpistemic:
		switch edgeType {
		case kg.EdgeDependsOn, kg.EdgeImports, kg.EdgeCalls:
			return kg.CrossAssumesClaim, true
		case kg.EdgeDocuments:
			return kg.CrossJustifiedByClaim, true
		}
	case source == kg.GraphEpistemic && target == kg.GraphCode:
		switch edgeType {
		case kg.EdgeTests:
			return kg.CrossVerifiedByTest, true
		case kg.EdgeDependsOn:
			return kg.CrossEvidencedByCode, true
		}
	case source == kg.GraphCode && target == kg.GraphOrg:
		switch edgeType {
		case kg.EdgeAuthoredBy, kg.EdgeReviewedBy:
			return kg.CrossOwnedByExpert, true
		}
	case source == kg.GraphOrg && target == kg.GraphRationale:
		switch edgeType {
		case kg.EdgeAuthoredBy:
			return kg.CrossDecidedBy, true
		}
	}
	return "", false
}
