package scipsrc

import (
	"path/filepath"
	"sort"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"

	"ckg/internal/kg"
)

// symbolRoleDefinition is the SCIP wire value for a definition
// occurrence.
const symbolRoleDefinition = 1

// Derive converts a SCIP index into knowledge graph entities and raw
// structural edges: file and symbol entities with containment parents,
// file-level import edges from cross-file references, and implements
// edges from symbol relationships.
func Derive(index *scippb.Index) ([]kg.Entity, []kg.GraphEdge) {
	definedIn := make(map[string]string)
	for _, doc := range index.Documents {
		for _, occ := range doc.Occurrences {
			if occ.SymbolRoles&symbolRoleDefinition != 0 {
				definedIn[occ.Symbol] = doc.RelativePath
			}
		}
		for _, sym := range doc.Symbols {
			if _, ok := definedIn[sym.Symbol]; !ok {
				definedIn[sym.Symbol] = doc.RelativePath
			}
		}
	}

	entitySet := make(map[string]kg.Entity)
	dirSet := make(map[string]bool)
	edgeSet := make(map[string]kg.GraphEdge)
	addEdge := func(e kg.GraphEdge) {
		edgeSet[e.SourceID+"\x00"+e.TargetID+"\x00"+e.Kind] = e
	}

	for _, doc := range index.Documents {
		dir := filepath.Dir(doc.RelativePath)
		if dir == "." {
			dir = ""
		}
		entitySet[doc.RelativePath] = kg.Entity{
			ID:     doc.RelativePath,
			Type:   kg.EntityFile,
			Parent: dir,
		}
		if dir != "" {
			dirSet[dir] = true
		}

		for _, sym := range doc.Symbols {
			if strings.HasPrefix(sym.Symbol, "local ") {
				continue
			}
			entitySet[sym.Symbol] = kg.Entity{
				ID:     sym.Symbol,
				Type:   symbolEntityType(sym.Symbol),
				Parent: doc.RelativePath,
			}
			for _, rel := range sym.Relationships {
				if rel.IsImplementation {
					addEdge(kg.GraphEdge{
						SourceID:   sym.Symbol,
						TargetID:   rel.Symbol,
						SourceType: symbolEntityType(sym.Symbol),
						TargetType: symbolEntityType(rel.Symbol),
						Kind:       "implements",
						Confidence: 1.0,
					})
				}
			}
		}

		// Cross-file references become file-level import edges.
		for _, occ := range doc.Occurrences {
			if occ.SymbolRoles&symbolRoleDefinition != 0 {
				continue
			}
			home, ok := definedIn[occ.Symbol]
			if !ok || home == doc.RelativePath {
				continue
			}
			addEdge(kg.GraphEdge{
				SourceID:   doc.RelativePath,
				TargetID:   home,
				SourceType: kg.EntityFile,
				TargetType: kg.EntityFile,
				Kind:       "import",
				Confidence: 1.0,
			})
		}
	}

	for dir := range dirSet {
		if _, ok := entitySet[dir]; !ok {
			entitySet[dir] = kg.Entity{ID: dir, Type: kg.EntityDirectory}
		}
	}

	entities := make([]kg.Entity, 0, len(entitySet))
	for _, e := range entitySet {
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })

	keys := make([]string, 0, len(edgeSet))
	for k := range edgeSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	edges := make([]kg.GraphEdge, 0, len(edgeSet))
	for _, k := range keys {
		edges = append(edges, edgeSet[k])
	}

	return entities, edges
}

// symbolEntityType classifies a SCIP symbol by its descriptor suffix:
// "()." marks a method or function, "#" a type.
func symbolEntityType(symbol string) kg.EntityType {
	if strings.HasSuffix(symbol, ").") {
		return kg.EntityFunction
	}
	if strings.HasSuffix(symbol, "#") {
		return kg.EntityClass
	}
	return kg.EntityFunction
}
