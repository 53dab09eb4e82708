package query

import (
	"fmt"
	"sort"

	"ckg/internal/graphalg"
	"ckg/internal/kg"
	"ckg/internal/storage"
)

// DebtHotspot is a high-debt entity weighted by its structural
// centrality in the knowledge graph.
type DebtHotspot struct {
	EntityID        string   `json:"entityId"`
	TotalDebt       float64  `json:"totalDebt"`
	CentralityScore float64  `json:"centralityScore"`
	ConnectedDebt   float64  `json:"connectedDebt"`
	NeighborCount   int      `json:"neighborCount"`
	DebtContagion   float64  `json:"debtContagion"`
	Recommendations []string `json:"recommendations"`
}

// DebtHotspots ranks indebted entities by debt times centrality.
func (e *Engine) DebtHotspots() ([]DebtHotspot, error) {
	edges, err := e.db.GetKnowledgeEdges(storage.KnowledgeEdgeFilter{})
	if err != nil {
		return nil, err
	}
	metrics, err := e.db.GetDebtMetrics("", 0)
	if err != nil {
		return nil, err
	}
	return RankHotspots(edges, metrics, e.cfg.MinDebt, e.cfg.HotspotLimit), nil
}

// RankHotspots computes centrality over the full knowledge graph,
// filters entities below minDebt, and returns the top entries sorted
// by totalDebt times centrality.
func RankHotspots(edges []kg.Edge, metrics []kg.DebtMetrics, minDebt float64, limit int) []DebtHotspot {
	adj := make(graphalg.Adjacency)
	neighbors := make(map[string]map[string]bool)
	addNeighbor := func(a, b string) {
		if neighbors[a] == nil {
			neighbors[a] = make(map[string]bool)
		}
		neighbors[a][b] = true
	}
	for _, edge := range edges {
		adj.AddEdge(edge.SourceID, edge.TargetID, edge.Weight)
		addNeighbor(edge.SourceID, edge.TargetID)
		addNeighbor(edge.TargetID, edge.SourceID)
	}

	betweenness := graphalg.BetweennessCentrality(adj)
	closeness := graphalg.ClosenessCentrality(adj)

	debtByEntity := make(map[string]kg.DebtMetrics, len(metrics))
	for _, m := range metrics {
		debtByEntity[m.EntityID] = m
	}

	hotspots := make([]DebtHotspot, 0)
	for _, m := range metrics {
		total := m.Total()
		if total < minDebt {
			continue
		}

		centrality := 0.5*betweenness[m.EntityID] + 0.5*closeness[m.EntityID]

		var connectedDebt float64
		neighborCount := len(neighbors[m.EntityID])
		for n := range neighbors[m.EntityID] {
			if nm, ok := debtByEntity[n]; ok {
				connectedDebt += nm.Total()
			}
		}

		contagion := 0.0
		if neighborCount > 0 {
			contagion = (total / 100) * (connectedDebt / (float64(neighborCount) * 100))
			if contagion > 1 {
				contagion = 1
			}
		}

		hotspots = append(hotspots, DebtHotspot{
			EntityID:        m.EntityID,
			TotalDebt:       total,
			CentralityScore: centrality,
			ConnectedDebt:   connectedDebt,
			NeighborCount:   neighborCount,
			DebtContagion:   contagion,
			Recommendations: hotspotRecommendations(m, centrality, connectedDebt),
		})
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].TotalDebt*hotspots[i].CentralityScore >
			hotspots[j].TotalDebt*hotspots[j].CentralityScore
	})
	if limit > 0 && len(hotspots) > limit {
		hotspots = hotspots[:limit]
	}
	return hotspots
}

func hotspotRecommendations(m kg.DebtMetrics, centrality, connectedDebt float64) []string {
	recs := make([]string, 0, 3)
	if m.Complexity > 50 {
		recs = append(recs, fmt.Sprintf("Reduce complexity (score %.0f): extract smaller functions", m.Complexity))
	}
	if m.Duplication > 50 {
		recs = append(recs, fmt.Sprintf("Deduplicate code (score %.0f): consolidate repeated logic", m.Duplication))
	}
	if m.Coupling > 50 {
		recs = append(recs, fmt.Sprintf("Decouple dependencies (score %.0f): introduce interfaces at boundaries", m.Coupling))
	}
	if centrality > 0.5 {
		recs = append(recs, "High centrality: changes here ripple widely, prioritize test coverage")
	}
	if connectedDebt > 200 {
		recs = append(recs, "Neighboring entities carry heavy debt: plan a cluster-wide cleanup")
	}
	return recs
}
