package query

import (
	"sort"

	"ckg/internal/kg"
	"ckg/internal/storage"
)

// Contributor is one author's ownership share of an entity.
type Contributor struct {
	Author string  `json:"author"`
	Weight float64 `json:"weight"`
}

// OwnershipEntry describes who owns one entity.
type OwnershipEntry struct {
	EntityID      string        `json:"entityId"`
	PrimaryAuthor string        `json:"primaryAuthor"`
	Contributors  []Contributor `json:"contributors"`
}

// AuthorSummary aggregates an author's footprint across entities.
type AuthorSummary struct {
	Author     string   `json:"author"`
	TotalOwned int      `json:"totalOwned"`
	PrimaryOn  []string `json:"primaryOn"`
}

// OwnershipMap groups authorship edges into per-entity ownership and
// per-author summaries.
type OwnershipMap struct {
	Entities []OwnershipEntry `json:"entities"`
	Authors  []AuthorSummary  `json:"authors"`
}

// Ownership builds the ownership map from authored_by edges.
func (e *Engine) Ownership() (*OwnershipMap, error) {
	edges, err := e.db.GetKnowledgeEdges(storage.KnowledgeEdgeFilter{EdgeType: kg.EdgeAuthoredBy})
	if err != nil {
		return nil, err
	}
	return BuildOwnershipMap(edges, e.cfg.MinOwnership), nil
}

// BuildOwnershipMap groups authored_by edges by source entity. The
// primary author is the highest-weight contributor; contributors below
// minOwnership are filtered from the listing.
func BuildOwnershipMap(edges []kg.Edge, minOwnership float64) *OwnershipMap {
	byEntity := make(map[string][]Contributor)
	for _, edge := range edges {
		if edge.Type != kg.EdgeAuthoredBy {
			continue
		}
		byEntity[edge.SourceID] = append(byEntity[edge.SourceID], Contributor{
			Author: edge.TargetID,
			Weight: edge.Weight,
		})
	}

	entityIDs := make([]string, 0, len(byEntity))
	for id := range byEntity {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	owned := make(map[string]int)
	primaryOn := make(map[string][]string)

	entries := make([]OwnershipEntry, 0, len(byEntity))
	for _, id := range entityIDs {
		contributors := byEntity[id]
		sort.SliceStable(contributors, func(i, j int) bool {
			if contributors[i].Weight != contributors[j].Weight {
				return contributors[i].Weight > contributors[j].Weight
			}
			return contributors[i].Author < contributors[j].Author
		})

		primary := contributors[0].Author
		primaryOn[primary] = append(primaryOn[primary], id)

		filtered := make([]Contributor, 0, len(contributors))
		for _, c := range contributors {
			if c.Weight < minOwnership {
				continue
			}
			filtered = append(filtered, c)
			owned[c.Author]++
		}

		entries = append(entries, OwnershipEntry{
			EntityID:      id,
			PrimaryAuthor: primary,
			Contributors:  filtered,
		})
	}

	authors := make([]string, 0, len(owned))
	for a := range owned {
		authors = append(authors, a)
	}
	sort.Strings(authors)

	summaries := make([]AuthorSummary, 0, len(authors))
	for _, a := range authors {
		summaries = append(summaries, AuthorSummary{
			Author:     a,
			TotalOwned: owned[a],
			PrimaryOn:  primaryOn[a],
		})
	}

	return &OwnershipMap{Entities: entries, Authors: summaries}
}
