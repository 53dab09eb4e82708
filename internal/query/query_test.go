package query

import (
	"testing"
	"time"

	"ckg/internal/kg"
)

func cloneEdge(a, b string, similarity float64, cloneType kg.CloneType) kg.Edge {
	return kg.Edge{
		ID:         kg.EdgeID(a, b, kg.EdgeCloneOf),
		SourceID:   a,
		TargetID:   b,
		Type:       kg.EdgeCloneOf,
		Weight:     similarity,
		Confidence: 0.85,
		Metadata:   map[string]interface{}{"cloneType": string(cloneType)},
	}
}

func TestClusterClones(t *testing.T) {
	edges := []kg.Edge{
		cloneEdge("a", "b", 0.9, kg.CloneType1),
		cloneEdge("b", "c", 0.8, kg.CloneType1),
		cloneEdge("x", "y", 0.75, kg.CloneType3),
		cloneEdge("p", "q", 0.5, kg.CloneExact), // below minSimilarity
	}

	clusters := ClusterClones(edges, 0.7, 2)
	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(clusters))
	}

	for _, c := range clusters {
		if c.Size < 2 {
			t.Errorf("Cluster smaller than minimum: %+v", c)
		}
		if c.AvgSimilarity < 0.7 {
			t.Errorf("Cluster below similarity floor: %+v", c)
		}
	}

	// The abc cluster is bigger and more similar, so it ranks first.
	if clusters[0].Size != 3 {
		t.Errorf("Expected 3-member cluster first, got %+v", clusters[0])
	}
	if clusters[0].RefactoringPotential < clusters[1].RefactoringPotential {
		t.Error("Clusters not sorted by refactoring potential")
	}
}

func TestDominantCloneTypeByFrequency(t *testing.T) {
	edges := []kg.Edge{
		cloneEdge("a", "b", 0.9, kg.CloneType2),
		cloneEdge("b", "c", 0.9, kg.CloneType2),
		cloneEdge("a", "c", 0.9, kg.CloneExact),
	}

	clusters := ClusterClones(edges, 0.7, 2)
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].DominantType != kg.CloneType2 {
		t.Errorf("Frequency 2 must beat 1: got %s", clusters[0].DominantType)
	}
}

func TestRankHotspots(t *testing.T) {
	edges := []kg.Edge{
		{SourceID: "hub", TargetID: "a", Type: kg.EdgeImports, Weight: 1},
		{SourceID: "hub", TargetID: "b", Type: kg.EdgeImports, Weight: 1},
		{SourceID: "a", TargetID: "hub", Type: kg.EdgeCalls, Weight: 1},
	}
	metrics := []kg.DebtMetrics{
		{EntityID: "hub", Complexity: 80, Coupling: 60},
		{EntityID: "a", Complexity: 40},
		{EntityID: "clean", Complexity: 5},
		{EntityID: "island", Complexity: 90},
	}

	hotspots := RankHotspots(edges, metrics, 30, 20)
	for _, h := range hotspots {
		if h.TotalDebt < 30 {
			t.Errorf("Entity below minDebt returned: %+v", h)
		}
	}
	for i := 1; i < len(hotspots); i++ {
		prev := hotspots[i-1].TotalDebt * hotspots[i-1].CentralityScore
		cur := hotspots[i].TotalDebt * hotspots[i].CentralityScore
		if cur > prev {
			t.Errorf("Hotspots not sorted at index %d: %f > %f", i, cur, prev)
		}
	}

	var island *DebtHotspot
	for i := range hotspots {
		if hotspots[i].EntityID == "island" {
			island = &hotspots[i]
		}
	}
	if island == nil {
		t.Fatal("Expected isolated indebted entity in results")
	}
	if island.DebtContagion != 0 {
		t.Errorf("Isolated entity must have zero contagion, got %f", island.DebtContagion)
	}

	var hub *DebtHotspot
	for i := range hotspots {
		if hotspots[i].EntityID == "hub" {
			hub = &hotspots[i]
		}
	}
	if hub == nil {
		t.Fatal("Expected hub in results")
	}
	if hub.NeighborCount != 2 {
		t.Errorf("Expected hub to have 2 neighbors, got %d", hub.NeighborCount)
	}
	if hub.ConnectedDebt != 40 {
		t.Errorf("Expected connected debt 40, got %f", hub.ConnectedDebt)
	}
	if len(hub.Recommendations) == 0 {
		t.Error("Expected recommendations for high complexity and coupling")
	}
}

func TestRankHotspotsLimit(t *testing.T) {
	metrics := make([]kg.DebtMetrics, 30)
	for i := range metrics {
		metrics[i] = kg.DebtMetrics{EntityID: string(rune('a' + i)), Complexity: 50}
	}
	hotspots := RankHotspots(nil, metrics, 30, 20)
	if len(hotspots) != 20 {
		t.Errorf("Expected limit 20, got %d", len(hotspots))
	}
}

func TestBuildOwnershipMap(t *testing.T) {
	edges := []kg.Edge{
		{SourceID: "a.go", TargetID: "ada", Type: kg.EdgeAuthoredBy, Weight: 0.7},
		{SourceID: "a.go", TargetID: "grace", Type: kg.EdgeAuthoredBy, Weight: 0.25},
		{SourceID: "a.go", TargetID: "drive-by", Type: kg.EdgeAuthoredBy, Weight: 0.05},
		{SourceID: "b.go", TargetID: "grace", Type: kg.EdgeAuthoredBy, Weight: 1.0},
	}

	m := BuildOwnershipMap(edges, 0.1)
	if len(m.Entities) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(m.Entities))
	}

	a := m.Entities[0]
	if a.EntityID != "a.go" || a.PrimaryAuthor != "ada" {
		t.Errorf("Expected ada primary on a.go, got %+v", a)
	}
	if len(a.Contributors) != 2 {
		t.Errorf("Expected low-share contributor filtered, got %v", a.Contributors)
	}

	var grace *AuthorSummary
	for i := range m.Authors {
		if m.Authors[i].Author == "grace" {
			grace = &m.Authors[i]
		}
	}
	if grace == nil {
		t.Fatal("Expected grace in author summaries")
	}
	if grace.TotalOwned != 2 {
		t.Errorf("Expected grace on 2 entities, got %d", grace.TotalOwned)
	}
	if len(grace.PrimaryOn) != 1 || grace.PrimaryOn[0] != "b.go" {
		t.Errorf("Expected grace primary on b.go, got %v", grace.PrimaryOn)
	}
}

func TestAnalyzeImpact(t *testing.T) {
	edges := []kg.Edge{
		{SourceID: "root", TargetID: "a", Type: kg.EdgeImports, Weight: 1.0, Confidence: 1.0},
		{SourceID: "root", TargetID: "b", Type: kg.EdgeCalls, Weight: 0.5, Confidence: 0.8},
		{SourceID: "a", TargetID: "c", Type: kg.EdgeImports, Weight: 1.0, Confidence: 1.0},
		{SourceID: "c", TargetID: "d", Type: kg.EdgeImports, Weight: 1.0, Confidence: 1.0},
		{SourceID: "d", TargetID: "e", Type: kg.EdgeImports, Weight: 1.0, Confidence: 1.0},
		{SourceID: "caller", TargetID: "root", Type: kg.EdgeCalls, Weight: 1.0, Confidence: 1.0},
	}

	analysis := AnalyzeImpact(edges, "root", 3)

	if len(analysis.DirectImpact) != 2 {
		t.Fatalf("Expected 2 direct impacts, got %d", len(analysis.DirectImpact))
	}
	for _, d := range analysis.DirectImpact {
		if d.EntityID == "a" && d.Score != 0.9 {
			t.Errorf("Expected imports score 0.9*1*1, got %f", d.Score)
		}
		if d.EntityID == "b" {
			want := 0.85 * 0.5 * 0.8
			if d.Score < want-1e-9 || d.Score > want+1e-9 {
				t.Errorf("Expected calls score %f, got %f", want, d.Score)
			}
		}
	}

	// Depth 3 reaches a, b, c, d but not e.
	seen := make(map[string]bool)
	for _, tr := range analysis.TransitiveImpact {
		if seen[tr.EntityID] {
			t.Errorf("Entity %s appears twice in transitive impact", tr.EntityID)
		}
		seen[tr.EntityID] = true
		if tr.PathLength > 3 {
			t.Errorf("Entity %s beyond max depth: %d", tr.EntityID, tr.PathLength)
		}
	}
	if seen["e"] {
		t.Error("Entity beyond max depth must not be reached")
	}
	if !seen["d"] {
		t.Error("Expected d at depth 3")
	}

	for i := 1; i < len(analysis.TransitiveImpact); i++ {
		if analysis.TransitiveImpact[i].PathLength < analysis.TransitiveImpact[i-1].PathLength {
			t.Error("Path lengths not monotonically non-decreasing in BFS order")
		}
	}

	if len(analysis.ReverseDependencies) != 1 || analysis.ReverseDependencies[0] != "caller" {
		t.Errorf("Expected caller as reverse dependency, got %v", analysis.ReverseDependencies)
	}
	if analysis.RiskScore < 0 || analysis.RiskScore > 1 {
		t.Errorf("Risk score out of bounds: %f", analysis.RiskScore)
	}
	if len(analysis.Recommendations) == 0 {
		t.Error("Expected a recommendation for reverse dependencies")
	}
}

func TestAnalyzeImpactEmpty(t *testing.T) {
	analysis := AnalyzeImpact(nil, "ghost", 3)
	if len(analysis.DirectImpact) != 0 || len(analysis.TransitiveImpact) != 0 {
		t.Errorf("Expected empty analysis for unknown entity, got %+v", analysis)
	}
	if analysis.RiskScore != 0 {
		t.Errorf("Expected zero risk, got %f", analysis.RiskScore)
	}
}

func TestAssembleTimeline(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	diffs := []kg.DiffRecord{
		{FilePath: "a.go", ChangeCategory: "modified", CommitHash: "c1", Timestamp: now.AddDate(0, 0, -5)},
		{FilePath: "a.go", ChangeCategory: "refactored", CommitHash: "c2", Timestamp: now.AddDate(0, 0, -2)},
		{FilePath: "a.go", ChangeCategory: "modified", CommitHash: "c0", Timestamp: now.AddDate(0, -6, 0)},
	}
	clones := []kg.Edge{
		cloneEdgeAt("a.go", "b.go", now.AddDate(0, 0, -1)),
		cloneEdgeAt("x.go", "y.go", now.AddDate(0, 0, -1)),
	}
	debt := []kg.DebtMetrics{{EntityID: "a.go", Complexity: 80}}

	tl := AssembleTimeline("a.go", diffs, clones, debt, now)

	// 3 diffs + 1 clone event + 1 debt event; the unrelated clone pair
	// is excluded.
	if len(tl.Events) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(tl.Events))
	}
	for i := 1; i < len(tl.Events); i++ {
		if tl.Events[i].Timestamp.Before(tl.Events[i-1].Timestamp) {
			t.Error("Events not chronologically sorted")
		}
	}

	wantChurn := 2.0 / 30
	if tl.ChurnRate < wantChurn-1e-9 || tl.ChurnRate > wantChurn+1e-9 {
		t.Errorf("Expected churn rate %f, got %f", wantChurn, tl.ChurnRate)
	}
	wantStability := 1 - wantChurn*10
	if tl.Stability < wantStability-1e-9 || tl.Stability > wantStability+1e-9 {
		t.Errorf("Expected stability %f, got %f", wantStability, tl.Stability)
	}
}

func TestAssembleTimelineNoSignals(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	tl := AssembleTimeline("ghost.go", nil, nil, nil, now)
	if len(tl.Events) != 0 {
		t.Errorf("Expected empty timeline, got %d events", len(tl.Events))
	}
	if tl.Stability != 1 {
		t.Errorf("Expected full stability with no churn, got %f", tl.Stability)
	}
}

func cloneEdgeAt(a, b string, at time.Time) kg.Edge {
	e := cloneEdge(a, b, 0.9, kg.CloneType1)
	e.ComputedAt = at
	return e
}
