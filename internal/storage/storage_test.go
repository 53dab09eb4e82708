package storage

import (
	"testing"
	"time"

	"ckg/internal/kg"
	"ckg/internal/logging"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	db, err := Open(t.TempDir(), ".ckg", logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testEdge(source, target string, edgeType kg.EdgeType, weight float64) kg.Edge {
	return kg.Edge{
		ID:         kg.EdgeID(source, target, edgeType),
		SourceID:   source,
		TargetID:   target,
		SourceType: kg.EntityFile,
		TargetType: kg.EntityFile,
		Type:       edgeType,
		Weight:     weight,
		Confidence: 0.9,
		ComputedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestOpenInitializesSchema(t *testing.T) {
	db := openTestDB(t)
	if !db.IsInitialized() {
		t.Error("Expected store to be initialized after Open")
	}
}

func TestUpsertAndQueryKnowledgeEdges(t *testing.T) {
	db := openTestDB(t)

	edges := []kg.Edge{
		testEdge("a.go", "b.go", kg.EdgeImports, 0.9),
		testEdge("a.go", "c.go", kg.EdgeCalls, 0.5),
		testEdge("b.go", "c.go", kg.EdgeCoChanged, 0.3),
	}
	edges[0].Metadata = map[string]interface{}{"origin": "ast"}

	if err := db.UpsertKnowledgeEdges(edges); err != nil {
		t.Fatalf("UpsertKnowledgeEdges failed: %v", err)
	}

	all, err := db.GetKnowledgeEdges(KnowledgeEdgeFilter{})
	if err != nil {
		t.Fatalf("GetKnowledgeEdges failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 edges, got %d", len(all))
	}

	imports, err := db.GetKnowledgeEdges(KnowledgeEdgeFilter{EdgeType: kg.EdgeImports})
	if err != nil {
		t.Fatal(err)
	}
	if len(imports) != 1 || imports[0].SourceID != "a.go" {
		t.Errorf("Expected one imports edge from a.go, got %v", imports)
	}
	if imports[0].Metadata["origin"] != "ast" {
		t.Errorf("Expected metadata round-trip, got %v", imports[0].Metadata)
	}

	heavy, err := db.GetKnowledgeEdges(KnowledgeEdgeFilter{MinWeight: 0.4})
	if err != nil {
		t.Fatal(err)
	}
	if len(heavy) != 2 {
		t.Errorf("Expected 2 edges with weight >= 0.4, got %d", len(heavy))
	}
}

func TestUpsertIdempotent(t *testing.T) {
	db := openTestDB(t)

	edge := testEdge("x.go", "y.go", kg.EdgeImports, 0.5)
	if err := db.UpsertKnowledgeEdges([]kg.Edge{edge}); err != nil {
		t.Fatal(err)
	}

	// Same triple with updated weight replaces rather than duplicates.
	edge.Weight = 0.8
	if err := db.UpsertKnowledgeEdges([]kg.Edge{edge}); err != nil {
		t.Fatal(err)
	}

	all, err := db.GetKnowledgeEdges(KnowledgeEdgeFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 edge after re-upsert, got %d", len(all))
	}
	if all[0].Weight != 0.8 {
		t.Errorf("Expected replaced weight 0.8, got %f", all[0].Weight)
	}
}

func TestEdgesFromTo(t *testing.T) {
	db := openTestDB(t)
	if err := db.UpsertKnowledgeEdges([]kg.Edge{
		testEdge("a", "b", kg.EdgeCalls, 0.7),
		testEdge("c", "b", kg.EdgeCalls, 0.6),
		testEdge("b", "d", kg.EdgeImports, 0.9),
	}); err != nil {
		t.Fatal(err)
	}

	from, err := db.GetKnowledgeEdgesFrom("b")
	if err != nil {
		t.Fatal(err)
	}
	if len(from) != 1 || from[0].TargetID != "d" {
		t.Errorf("Expected one outgoing edge b->d, got %v", from)
	}

	to, err := db.GetKnowledgeEdgesTo("b")
	if err != nil {
		t.Fatal(err)
	}
	if len(to) != 2 {
		t.Errorf("Expected two incoming edges to b, got %d", len(to))
	}
}

func TestClearKnowledgeEdges(t *testing.T) {
	db := openTestDB(t)
	if err := db.UpsertKnowledgeEdges([]kg.Edge{testEdge("a", "b", kg.EdgeCalls, 0.7)}); err != nil {
		t.Fatal(err)
	}
	if err := db.ClearKnowledgeEdges(); err != nil {
		t.Fatal(err)
	}
	all, err := db.GetKnowledgeEdges(KnowledgeEdgeFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("Expected empty edge set after clear, got %d", len(all))
	}
}

func TestKnowledgeSubgraph(t *testing.T) {
	db := openTestDB(t)
	if err := db.UpsertKnowledgeEdges([]kg.Edge{
		testEdge("root", "a", kg.EdgeImports, 0.9),
		testEdge("a", "b", kg.EdgeImports, 0.9),
		testEdge("b", "c", kg.EdgeImports, 0.9),
		testEdge("root", "x", kg.EdgeAuthoredBy, 0.5),
	}); err != nil {
		t.Fatal(err)
	}

	// Depth 2 reaches root->a and a->b but not b->c.
	edges, err := db.GetKnowledgeSubgraph("root", 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 3 {
		t.Errorf("Expected 3 edges at depth 2, got %d", len(edges))
	}

	// Type filter drops the authored_by branch.
	edges, err = db.GetKnowledgeSubgraph("root", 2, []kg.EdgeType{kg.EdgeImports})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range edges {
		if e.Type != kg.EdgeImports {
			t.Errorf("Expected only imports edges, got %s", e.Type)
		}
	}
}

func TestCountByType(t *testing.T) {
	db := openTestDB(t)
	if err := db.UpsertKnowledgeEdges([]kg.Edge{
		testEdge("a", "b", kg.EdgeCalls, 0.7),
		testEdge("b", "c", kg.EdgeCalls, 0.7),
		testEdge("a", "c", kg.EdgeCloneOf, 0.8),
	}); err != nil {
		t.Fatal(err)
	}

	counts, err := db.CountKnowledgeEdgesByType()
	if err != nil {
		t.Fatal(err)
	}
	if counts[kg.EdgeCalls] != 2 || counts[kg.EdgeCloneOf] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
}

func TestRawSignalRoundTrips(t *testing.T) {
	db := openTestDB(t)

	if err := db.InsertCloneEntries([]kg.CloneEntry{
		{EntityA: "f1", EntityB: "f2", Similarity: 0.92, Type: kg.CloneType1},
	}); err != nil {
		t.Fatal(err)
	}
	clones, err := db.GetCloneEntries(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(clones) != 1 || clones[0].Type != kg.CloneType1 {
		t.Errorf("Unexpected clones: %v", clones)
	}

	if err := db.InsertBlameEntries([]kg.BlameEntry{
		{FilePath: "a.go", Author: "ada", StartLine: 1, EndLine: 30},
		{FilePath: "a.go", Author: "grace", StartLine: 31, EndLine: 40},
	}); err != nil {
		t.Fatal(err)
	}
	blame, err := db.GetBlameEntries("a.go", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(blame) != 2 {
		t.Errorf("Expected 2 blame entries, got %d", len(blame))
	}

	if err := db.UpsertDebtMetrics([]kg.DebtMetrics{
		{EntityID: "a.go", Complexity: 60, Coupling: 40},
	}); err != nil {
		t.Fatal(err)
	}
	debt, err := db.GetDebtMetrics("a.go", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(debt) != 1 || debt[0].Complexity != 60 {
		t.Errorf("Unexpected debt metrics: %v", debt)
	}

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := db.InsertDiffRecords([]kg.DiffRecord{
		{FilePath: "a.go", ChangeCategory: "refactored", CommitHash: "abc", Author: "ada", Timestamp: ts},
	}); err != nil {
		t.Fatal(err)
	}
	diffs, err := db.GetDiffRecords("a.go", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != 1 || !diffs[0].Timestamp.Equal(ts) {
		t.Errorf("Unexpected diff records: %v", diffs)
	}

	if err := db.UpsertEntities([]kg.Entity{
		{ID: "fn1", Type: kg.EntityFunction, Parent: "a.go"},
		{ID: "a.go", Type: kg.EntityFile, Parent: "src"},
	}); err != nil {
		t.Fatal(err)
	}
	entities, err := db.GetEntities()
	if err != nil {
		t.Fatal(err)
	}
	if len(entities) != 2 {
		t.Errorf("Expected 2 entities, got %d", len(entities))
	}

	if err := db.UpsertGraphEdges([]kg.GraphEdge{
		{SourceID: "a.go", TargetID: "b.go", SourceType: kg.EntityFile, TargetType: kg.EntityFile, Kind: "import", Confidence: 1.0},
	}); err != nil {
		t.Fatal(err)
	}
	raw, err := db.GetGraphEdges(GraphEdgeFilter{Kind: "import"})
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 1 {
		t.Errorf("Expected 1 raw edge, got %d", len(raw))
	}
}

func TestBuildSummaryRoundTrip(t *testing.T) {
	db := openTestDB(t)

	none, err := db.GetLastBuildSummary()
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Errorf("Expected nil summary before any build, got %v", none)
	}

	s := BuildSummary{
		RunID:       "run-1",
		TotalEdges:  12,
		EdgeCounts:  map[kg.EdgeType]int{kg.EdgeImports: 7, kg.EdgeCloneOf: 5},
		Communities: 3,
		DurationMs:  150,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := db.RecordBuildSummary(s); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetLastBuildSummary()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.TotalEdges != 12 || got.EdgeCounts[kg.EdgeImports] != 7 {
		t.Errorf("Unexpected summary: %+v", got)
	}
}
