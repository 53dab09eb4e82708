package crossgraph

import (
	"ckg/internal/kg"
)

// ChainHop is one backward step in an influence chain.
type ChainHop struct {
	EntityID          string                 `json:"entityId"`
	EdgeType          kg.CrossGraphEdgeType  `json:"edgeType"`
	Damping           float64                `json:"damping"`
	Weight            float64                `json:"weight"`
	Confidence        float64                `json:"confidence"`
	PropagationFactor float64                `json:"propagationFactor"`
	Importance        float64                `json:"importance"`
}

// InfluenceChain explains where an entity's propagated importance came
// from. It is purely explanatory; it plays no part in computing the
// propagated score.
type InfluenceChain struct {
	TargetEntityID         string     `json:"targetEntityId"`
	Hops                   []ChainHop `json:"hops"`
	TotalPropagationFactor float64    `json:"totalPropagationFactor"`
}

// TraceInfluenceChain walks backward from the target over incoming
// cross-graph edges, always expanding the highest-importance unvisited
// source next. The running product of each hop's damping, weight, and
// confidence becomes the total propagation factor. The chain length is
// bounded by maxPropagationDepth.
func TraceInfluenceChain(targetID string, edges []kg.CrossGraphEdge, profiles map[string]kg.ImportanceProfile, opts Options, maxPropagationDepth int) *InfluenceChain {
	incoming := make(map[string][]kg.CrossGraphEdge)
	for _, edge := range edges {
		incoming[edge.TargetEntityID] = append(incoming[edge.TargetEntityID], edge)
	}

	chain := &InfluenceChain{
		TargetEntityID:         targetID,
		Hops:                   []ChainHop{},
		TotalPropagationFactor: 1,
	}

	visited := map[string]bool{targetID: true}
	current := targetID
	for len(chain.Hops) < maxPropagationDepth {
		var best *kg.CrossGraphEdge
		bestImportance := -1.0
		for i := range incoming[current] {
			edge := &incoming[current][i]
			if visited[edge.SourceEntityID] {
				continue
			}
			importance := profiles[edge.SourceEntityID].Unified
			if importance > bestImportance ||
				(importance == bestImportance && best != nil && edge.SourceEntityID < best.SourceEntityID) {
				best = edge
				bestImportance = importance
			}
		}
		if best == nil {
			break
		}

		damping := opts.damping(best.Type)
		factor := damping * best.Weight * best.Confidence
		chain.TotalPropagationFactor *= factor
		chain.Hops = append(chain.Hops, ChainHop{
			EntityID:          best.SourceEntityID,
			EdgeType:          best.Type,
			Damping:           damping,
			Weight:            best.Weight,
			Confidence:        best.Confidence,
			PropagationFactor: factor,
			Importance:        bestImportance,
		})

		visited[best.SourceEntityID] = true
		current = best.SourceEntityID
	}

	if len(chain.Hops) == 0 {
		chain.TotalPropagationFactor = 0
	}
	return chain
}
