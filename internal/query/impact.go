package query

import (
	"fmt"
	"math"

	"ckg/internal/kg"
	"ckg/internal/storage"
)

// DirectImpact is an immediately affected entity with its scored edge.
type DirectImpact struct {
	EntityID   string      `json:"entityId"`
	EdgeType   kg.EdgeType `json:"edgeType"`
	Score      float64     `json:"score"`
	EdgeWeight float64     `json:"edgeWeight"`
}

// TransitiveImpact is an entity reached by the bounded BFS with its
// depth-decayed score.
type TransitiveImpact struct {
	EntityID    string  `json:"entityId"`
	PathLength  int     `json:"pathLength"`
	ImpactScore float64 `json:"impactScore"`
}

// ImpactAnalysis is the full blast-radius report for one entity.
type ImpactAnalysis struct {
	EntityID            string             `json:"entityId"`
	DirectImpact        []DirectImpact     `json:"directImpact"`
	TransitiveImpact    []TransitiveImpact `json:"transitiveImpact"`
	ReverseDependencies []string           `json:"reverseDependencies"`
	RiskScore           float64            `json:"riskScore"`
	Recommendations     []string           `json:"recommendations"`
}

// transitiveDecay is the per-hop geometric decay of transitive impact.
const transitiveDecay = 0.7

// Impact analyzes the change blast radius of one entity.
func (e *Engine) Impact(entityID string) (*ImpactAnalysis, error) {
	edges, err := e.db.GetKnowledgeEdges(storage.KnowledgeEdgeFilter{})
	if err != nil {
		return nil, err
	}
	return AnalyzeImpact(edges, entityID, e.cfg.ImpactMaxDepth), nil
}

// AnalyzeImpact scores direct impact from outgoing edges and walks a
// bounded breadth-first traversal for transitive impact. Each reached
// node scores 0.7^depth regardless of edge weight.
func AnalyzeImpact(edges []kg.Edge, entityID string, maxDepth int) *ImpactAnalysis {
	outgoing := make(map[string][]kg.Edge)
	incoming := make(map[string][]kg.Edge)
	for _, edge := range edges {
		outgoing[edge.SourceID] = append(outgoing[edge.SourceID], edge)
		incoming[edge.TargetID] = append(incoming[edge.TargetID], edge)
	}

	direct := make([]DirectImpact, 0, len(outgoing[entityID]))
	for _, edge := range outgoing[entityID] {
		direct = append(direct, DirectImpact{
			EntityID:   edge.TargetID,
			EdgeType:   edge.Type,
			Score:      edge.Type.ImpactWeight() * edge.Weight * edge.Confidence,
			EdgeWeight: edge.Weight,
		})
	}

	// BFS with a visited set; first visit wins, so path lengths are
	// shortest paths and scores are monotonically non-increasing in
	// visitation order.
	type frontier struct {
		id    string
		depth int
	}
	visited := map[string]bool{entityID: true}
	queue := []frontier{{entityID, 0}}
	transitive := make([]TransitiveImpact, 0)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, edge := range outgoing[cur.id] {
			if visited[edge.TargetID] {
				continue
			}
			visited[edge.TargetID] = true
			depth := cur.depth + 1
			transitive = append(transitive, TransitiveImpact{
				EntityID:    edge.TargetID,
				PathLength:  depth,
				ImpactScore: math.Pow(transitiveDecay, float64(depth)),
			})
			queue = append(queue, frontier{edge.TargetID, depth})
		}
	}

	reverse := make([]string, 0, len(incoming[entityID]))
	seen := make(map[string]bool)
	for _, edge := range incoming[entityID] {
		if !seen[edge.SourceID] {
			seen[edge.SourceID] = true
			reverse = append(reverse, edge.SourceID)
		}
	}

	risk := 0.6*averageDirect(direct) + 0.4*averageTransitive(transitive)
	if risk > 1 {
		risk = 1
	}

	return &ImpactAnalysis{
		EntityID:            entityID,
		DirectImpact:        direct,
		TransitiveImpact:    transitive,
		ReverseDependencies: reverse,
		RiskScore:           risk,
		Recommendations:     impactRecommendations(direct, transitive, reverse, risk),
	}
}

func averageDirect(direct []DirectImpact) float64 {
	if len(direct) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range direct {
		sum += d.Score
	}
	return sum / float64(len(direct))
}

func averageTransitive(transitive []TransitiveImpact) float64 {
	if len(transitive) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range transitive {
		sum += t.ImpactScore
	}
	return sum / float64(len(transitive))
}

func impactRecommendations(direct []DirectImpact, transitive []TransitiveImpact, reverse []string, risk float64) []string {
	recs := make([]string, 0, 4)
	if len(direct) > 10 {
		recs = append(recs, fmt.Sprintf("High fan-out (%d direct dependents): split the change into smaller steps", len(direct)))
	}
	if len(transitive) > 50 {
		recs = append(recs, fmt.Sprintf("Large transitive reach (%d entities): run the full test suite", len(transitive)))
	}
	if risk > 0.7 {
		recs = append(recs, fmt.Sprintf("Risk score %.2f: review with an owner of the affected area before merging", risk))
	}
	if len(reverse) > 0 {
		recs = append(recs, fmt.Sprintf("%d entities depend on this one: check callers for contract changes", len(reverse)))
	}
	return recs
}
