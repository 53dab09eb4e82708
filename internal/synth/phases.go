package synth

import (
	"sort"
	"time"

	"ckg/internal/kg"
)

// Per-source confidence levels. AST-derived edges are ground truth;
// everything statistical carries its own fixed confidence.
const (
	structuralConfidence = 1.0
	cloneConfidence      = 0.85
	authorshipConfidence = 0.95
	debtConfidence       = 0.7
	hierarchyConfidence  = 1.0
)

// categoryShareThreshold is the per-category debt level both entities
// must exceed for the category to be recorded as shared.
const categoryShareThreshold = 30

// structuralKinds maps raw AST edge kinds to knowledge edge types.
var structuralKinds = map[string]kg.EdgeType{
	"import":     kg.EdgeImports,
	"call":       kg.EdgeCalls,
	"extends":    kg.EdgeExtends,
	"implements": kg.EdgeImplements,
}

// StructuralEdges remaps raw AST edges into knowledge edges. Weight is
// the source confidence when reported, otherwise 1.0. Unknown kinds are
// skipped.
func StructuralEdges(raw []kg.GraphEdge, now time.Time) []kg.Edge {
	edges := make([]kg.Edge, 0, len(raw))
	for _, r := range raw {
		edgeType, ok := structuralKinds[r.Kind]
		if !ok {
			continue
		}
		weight := r.Confidence
		if weight <= 0 {
			weight = 1.0
		}
		edges = append(edges, kg.Edge{
			ID:         kg.EdgeID(r.SourceID, r.TargetID, edgeType),
			SourceID:   r.SourceID,
			TargetID:   r.TargetID,
			SourceType: r.SourceType,
			TargetType: r.TargetType,
			Type:       edgeType,
			Weight:     kg.Clamp01(weight),
			Confidence: structuralConfidence,
			ComputedAt: now,
		})
	}
	return edges
}

// CloneEdges emits one clone_of edge per detected clone pair with
// similarity as weight.
func CloneEdges(entries []kg.CloneEntry, now time.Time) []kg.Edge {
	edges := make([]kg.Edge, 0, len(entries))
	for _, c := range entries {
		edges = append(edges, kg.Edge{
			ID:         kg.EdgeID(c.EntityA, c.EntityB, kg.EdgeCloneOf),
			SourceID:   c.EntityA,
			TargetID:   c.EntityB,
			SourceType: kg.EntityFunction,
			TargetType: kg.EntityFunction,
			Type:       kg.EdgeCloneOf,
			Weight:     kg.Clamp01(c.Similarity),
			Confidence: cloneConfidence,
			Metadata: map[string]interface{}{
				"cloneType": string(c.Type),
			},
			ComputedAt: now,
		})
	}
	return edges
}

// CoChangeEdges converts mined co-change pairs into co_changed edges.
// Pairs below minStrength or with fewer than minCount observed
// co-changes are dropped. Confidence grows with the observation count
// and caps at changeCount=10.
func CoChangeEdges(graph *kg.TemporalGraph, minStrength float64, minCount int, now time.Time) []kg.Edge {
	if graph == nil {
		return nil
	}
	edges := make([]kg.Edge, 0, len(graph.Edges))
	for _, t := range graph.Edges {
		if t.Strength < minStrength || t.ChangeCount < minCount {
			continue
		}
		confidence := float64(t.ChangeCount) / 10
		if confidence > 1 {
			confidence = 1
		}
		edges = append(edges, kg.Edge{
			ID:         kg.EdgeID(t.FileA, t.FileB, kg.EdgeCoChanged),
			SourceID:   t.FileA,
			TargetID:   t.FileB,
			SourceType: kg.EntityFile,
			TargetType: kg.EntityFile,
			Type:       kg.EdgeCoChanged,
			Weight:     kg.Clamp01(t.Strength),
			Confidence: confidence,
			Metadata: map[string]interface{}{
				"changeCount":  t.ChangeCount,
				"totalChanges": t.TotalChanges,
			},
			ComputedAt: now,
		})
	}
	return edges
}

// AuthorshipEdges aggregates blame line ranges into per-file ownership
// shares and emits authored_by edges. Shares below minOwnership are
// dropped as noise.
func AuthorshipEdges(blame []kg.BlameEntry, minOwnership float64, now time.Time) []kg.Edge {
	linesByFileAuthor := make(map[string]map[string]int)
	totalByFile := make(map[string]int)
	for _, b := range blame {
		lines := b.Lines()
		if lines == 0 {
			continue
		}
		if linesByFileAuthor[b.FilePath] == nil {
			linesByFileAuthor[b.FilePath] = make(map[string]int)
		}
		linesByFileAuthor[b.FilePath][b.Author] += lines
		totalByFile[b.FilePath] += lines
	}

	files := make([]string, 0, len(linesByFileAuthor))
	for f := range linesByFileAuthor {
		files = append(files, f)
	}
	sort.Strings(files)

	var edges []kg.Edge
	for _, file := range files {
		total := totalByFile[file]
		if total == 0 {
			continue
		}
		authors := make([]string, 0, len(linesByFileAuthor[file]))
		for a := range linesByFileAuthor[file] {
			authors = append(authors, a)
		}
		sort.Strings(authors)

		for _, author := range authors {
			ownership := float64(linesByFileAuthor[file][author]) / float64(total)
			if ownership < minOwnership {
				continue
			}
			edges = append(edges, kg.Edge{
				ID:         kg.EdgeID(file, author, kg.EdgeAuthoredBy),
				SourceID:   file,
				TargetID:   author,
				SourceType: kg.EntityFile,
				TargetType: kg.EntityAuthor,
				Type:       kg.EdgeAuthoredBy,
				Weight:     kg.Clamp01(ownership),
				Confidence: authorshipConfidence,
				Metadata: map[string]interface{}{
					"lines":      linesByFileAuthor[file][author],
					"totalLines": total,
				},
				ComputedAt: now,
			})
		}
	}
	return edges
}

// DebtEdges links entities with similar technical debt profiles. Only
// entities whose total debt exceeds debtThreshold participate; pairs
// are kept when the cosine similarity of their 6-dimensional debt
// vectors reaches minSimilarity.
func DebtEdges(metrics []kg.DebtMetrics, debtThreshold, minSimilarity float64, now time.Time) []kg.Edge {
	indebted := make([]kg.DebtMetrics, 0, len(metrics))
	for _, m := range metrics {
		if m.Total() > debtThreshold {
			indebted = append(indebted, m)
		}
	}
	sort.Slice(indebted, func(i, j int) bool {
		return indebted[i].EntityID < indebted[j].EntityID
	})

	var edges []kg.Edge
	for i := 0; i < len(indebted); i++ {
		for j := i + 1; j < len(indebted); j++ {
			a, b := indebted[i], indebted[j]
			similarity := kg.CosineSimilarity(a.Vector(), b.Vector())
			if similarity < minSimilarity {
				continue
			}
			edges = append(edges, kg.Edge{
				ID:         kg.EdgeID(a.EntityID, b.EntityID, kg.EdgeDebtRelated),
				SourceID:   a.EntityID,
				TargetID:   b.EntityID,
				SourceType: kg.EntityFile,
				TargetType: kg.EntityFile,
				Type:       kg.EdgeDebtRelated,
				Weight:     kg.Clamp01(similarity),
				Confidence: debtConfidence,
				Metadata: map[string]interface{}{
					"sharedCategories": a.SharedCategories(b, categoryShareThreshold),
				},
				ComputedAt: now,
			})
		}
	}
	return edges
}

// HierarchyEdges emits containment edges: function part_of file and
// file part_of directory.
func HierarchyEdges(entities []kg.Entity, now time.Time) []kg.Edge {
	sorted := make([]kg.Entity, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var edges []kg.Edge
	for _, e := range sorted {
		if e.Parent == "" {
			continue
		}
		var parentType kg.EntityType
		switch e.Type {
		case kg.EntityFunction:
			parentType = kg.EntityFile
		case kg.EntityFile:
			parentType = kg.EntityDirectory
		default:
			continue
		}
		edges = append(edges, kg.Edge{
			ID:         kg.EdgeID(e.ID, e.Parent, kg.EdgePartOf),
			SourceID:   e.ID,
			TargetID:   e.Parent,
			SourceType: e.Type,
			TargetType: parentType,
			Type:       kg.EdgePartOf,
			Weight:     1.0,
			Confidence: hierarchyConfidence,
			ComputedAt: now,
		})
	}
	return edges
}

// FilterEdges drops edges below the global minimum weight.
func FilterEdges(edges []kg.Edge, minWeight float64) []kg.Edge {
	kept := make([]kg.Edge, 0, len(edges))
	for _, e := range edges {
		if e.Weight >= minWeight {
			kept = append(kept, e)
		}
	}
	return kept
}

// CountByType tallies edges per edge type.
func CountByType(edges []kg.Edge) map[kg.EdgeType]int {
	counts := make(map[kg.EdgeType]int)
	for _, e := range edges {
		counts[e.Type]++
	}
	return counts
}
