package crossgraph

import (
	"sort"

	"ckg/internal/kg"
)

// Options tunes a propagation pass.
type Options struct {
	// MinImportanceThreshold is the minimum unified importance a
	// neighbor must carry to contribute influence.
	MinImportanceThreshold float64
	// ForwardWeight blends incoming against outgoing influence.
	ForwardWeight float64
	// Alpha weights the original importance against the propagated
	// influence; local importance always dominates.
	Alpha float64
	// NormalizeOutput rescales the batch so the top entity is 1.0.
	NormalizeOutput bool
	// DampingOverrides replaces per-relation default damping factors.
	DampingOverrides map[kg.CrossGraphEdgeType]float64
}

// DefaultOptions returns the standard propagation parameters.
func DefaultOptions() Options {
	return Options{
		MinImportanceThreshold: 0.01,
		ForwardWeight:          0.7,
		Alpha:                  0.7,
		NormalizeOutput:        true,
	}
}

func (o Options) damping(t kg.CrossGraphEdgeType) float64 {
	if d, ok := o.DampingOverrides[t]; ok {
		return d
	}
	return t.DefaultDamping()
}

// Outcome is the result of one propagation pass. SkippedEntities
// counts entities incident to cross-graph edges that had no importance
// profile and therefore contributed nothing.
type Outcome struct {
	Results         []kg.PropagationResult `json:"results"`
	SkippedEntities int                    `json:"skippedEntities"`
}

// Propagate runs exactly one deterministic propagation pass over the
// cross-graph edges. It never mutates profiles and never iterates to a
// fixed point; re-running with identical inputs yields identical
// output.
func Propagate(profiles map[string]kg.ImportanceProfile, graphOf map[string]kg.GraphType, edges []kg.CrossGraphEdge, opts Options) *Outcome {
	incoming := make(map[string][]kg.CrossGraphEdge)
	outgoing := make(map[string][]kg.CrossGraphEdge)
	skipped := make(map[string]bool)
	for _, edge := range edges {
		incoming[edge.TargetEntityID] = append(incoming[edge.TargetEntityID], edge)
		outgoing[edge.SourceEntityID] = append(outgoing[edge.SourceEntityID], edge)
		if _, ok := profiles[edge.SourceEntityID]; !ok {
			skipped[edge.SourceEntityID] = true
		}
		if _, ok := profiles[edge.TargetEntityID]; !ok {
			skipped[edge.TargetEntityID] = true
		}
	}

	entityIDs := make([]string, 0, len(profiles))
	for id := range profiles {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	results := make([]kg.PropagationResult, 0, len(profiles))
	for _, id := range entityIDs {
		profile := profiles[id]

		var incomingInfluence float64
		var sources []kg.InfluenceSource
		for _, edge := range incoming[id] {
			source, ok := profiles[edge.SourceEntityID]
			if !ok || source.Unified < opts.MinImportanceThreshold {
				continue
			}
			contribution := opts.damping(edge.Type) * source.Unified * edge.Weight * edge.Confidence
			incomingInfluence += contribution
			sources = append(sources, kg.InfluenceSource{
				EntityID:     edge.SourceEntityID,
				Direction:    kg.InfluenceIncoming,
				EdgeType:     edge.Type,
				Contribution: contribution,
			})
		}

		// Importance flows primarily forward; reverse flow along
		// outgoing edges runs at half damping.
		var outgoingInfluence float64
		for _, edge := range outgoing[id] {
			target, ok := profiles[edge.TargetEntityID]
			if !ok || target.Unified < opts.MinImportanceThreshold {
				continue
			}
			contribution := (opts.damping(edge.Type) / 2) * target.Unified * edge.Weight * edge.Confidence
			outgoingInfluence += contribution
			sources = append(sources, kg.InfluenceSource{
				EntityID:     edge.TargetEntityID,
				Direction:    kg.InfluenceOutgoing,
				EdgeType:     edge.Type,
				Contribution: contribution,
			})
		}

		total := opts.ForwardWeight*incomingInfluence + (1-opts.ForwardWeight)*outgoingInfluence

		edgeCount := len(incoming[id]) + len(outgoing[id])
		divisorEdges := edgeCount
		if divisorEdges < 1 {
			divisorEdges = 1
		}
		normalized := total / (float64(divisorEdges) * 0.5)

		propagated := kg.Clamp01(opts.Alpha*profile.Unified + (1-opts.Alpha)*normalized)

		results = append(results, kg.PropagationResult{
			EntityID:             id,
			Graph:                graphOf[id],
			OriginalImportance:   profile.Unified,
			PropagatedImportance: propagated,
			InfluenceSources:     sources,
			ImportanceDelta:      propagated - profile.Unified,
		})
	}

	if opts.NormalizeOutput {
		var max float64
		for _, r := range results {
			if r.PropagatedImportance > max {
				max = r.PropagatedImportance
			}
		}
		if max > 0 {
			for i := range results {
				results[i].PropagatedImportance /= max
				results[i].ImportanceDelta = results[i].PropagatedImportance - results[i].OriginalImportance
			}
		}
	}

	return &Outcome{
		Results:         results,
		SkippedEntities: len(skipped),
	}
}
