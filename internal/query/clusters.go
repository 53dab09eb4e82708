package query

import (
	"sort"

	"ckg/internal/graphalg"
	"ckg/internal/kg"
	"ckg/internal/storage"
)

// CloneCluster is a group of mutually similar entities worth
// deduplicating together.
type CloneCluster struct {
	ID                   int          `json:"id"`
	Entities             []string     `json:"entities"`
	Size                 int          `json:"size"`
	AvgSimilarity        float64      `json:"avgSimilarity"`
	DominantType         kg.CloneType `json:"dominantType"`
	RefactoringPotential float64      `json:"refactoringPotential"`
}

// CloneClusters groups clone_of edges into communities and ranks them
// by refactoring potential.
func (e *Engine) CloneClusters() ([]CloneCluster, error) {
	edges, err := e.db.GetKnowledgeEdges(storage.KnowledgeEdgeFilter{
		EdgeType:  kg.EdgeCloneOf,
		MinWeight: e.cfg.MinSimilarity,
	})
	if err != nil {
		return nil, err
	}
	return ClusterClones(edges, e.cfg.MinSimilarity, e.cfg.MinClusterSize), nil
}

// ClusterClones runs community detection over clone edges at or above
// minSimilarity and discards communities smaller than minClusterSize.
func ClusterClones(edges []kg.Edge, minSimilarity float64, minClusterSize int) []CloneCluster {
	adj := make(graphalg.Adjacency)
	kept := make([]kg.Edge, 0, len(edges))
	for _, edge := range edges {
		if edge.Type != kg.EdgeCloneOf || edge.Weight < minSimilarity {
			continue
		}
		adj.AddUndirected(edge.SourceID, edge.TargetID, edge.Weight)
		kept = append(kept, edge)
	}

	communities := graphalg.DetectCommunities(adj)
	groups := graphalg.GroupByCommunity(communities)

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	clusters := make([]CloneCluster, 0, len(groups))
	for _, id := range ids {
		members := groups[id]
		if len(members) < minClusterSize {
			continue
		}
		memberSet := make(map[string]bool, len(members))
		for _, m := range members {
			memberSet[m] = true
		}

		var simSum float64
		var intraCount int
		typeCounts := make(map[kg.CloneType]int)
		for _, edge := range kept {
			touches := memberSet[edge.SourceID] || memberSet[edge.TargetID]
			if !touches {
				continue
			}
			if ct, ok := edge.Metadata["cloneType"].(string); ok {
				typeCounts[kg.CloneType(ct)]++
			}
			if memberSet[edge.SourceID] && memberSet[edge.TargetID] {
				simSum += edge.Weight
				intraCount++
			}
		}

		avgSimilarity := 0.0
		if intraCount > 0 {
			avgSimilarity = simSum / float64(intraCount)
		}

		dominant := dominantCloneType(typeCounts)

		sizeFactor := float64(len(members)) / 5
		if sizeFactor > 1 {
			sizeFactor = 1
		}
		potential := 0.3*sizeFactor + 0.4*avgSimilarity + 0.3*dominant.RefactorWeight()

		sort.Strings(members)
		clusters = append(clusters, CloneCluster{
			ID:                   id,
			Entities:             members,
			Size:                 len(members),
			AvgSimilarity:        avgSimilarity,
			DominantType:         dominant,
			RefactoringPotential: potential,
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].RefactoringPotential > clusters[j].RefactoringPotential
	})
	return clusters
}

// dominantCloneType picks the most frequent clone type; frequency ties
// go to the type with the higher refactor weight.
func dominantCloneType(counts map[kg.CloneType]int) kg.CloneType {
	dominant := kg.CloneSemantic
	best := 0
	for _, t := range []kg.CloneType{kg.CloneExact, kg.CloneType1, kg.CloneType2, kg.CloneType3, kg.CloneSemantic} {
		if counts[t] > best {
			best = counts[t]
			dominant = t
		}
	}
	return dominant
}
