package temporal

import (
	"strings"
	"testing"
)

func TestParseLog(t *testing.T) {
	output := strings.Join([]string{
		commitMarker + "abc123",
		"a.go",
		"b.go",
		"",
		commitMarker + "def456",
		"a.go",
		"",
		commitMarker + "merge789",
		"",
		commitMarker + "ghi012",
		"b.go",
		"c.go",
	}, "\n")

	commits := ParseLog(output)
	if len(commits) != 3 {
		t.Fatalf("Expected 3 non-empty commits, got %d", len(commits))
	}
	if len(commits[0]) != 2 || commits[0][0] != "a.go" {
		t.Errorf("Unexpected first commit files: %v", commits[0])
	}
	if len(commits[1]) != 1 || commits[1][0] != "a.go" {
		t.Errorf("Unexpected second commit files: %v", commits[1])
	}
}

func TestParseLogEmpty(t *testing.T) {
	if got := ParseLog(""); len(got) != 0 {
		t.Errorf("Expected no commits from empty output, got %v", got)
	}
}

func TestBuildEdges(t *testing.T) {
	commits := [][]string{
		{"a.go", "b.go"},
		{"a.go", "b.go"},
		{"a.go"},
		{"b.go", "c.go"},
	}

	edges := BuildEdges(commits)
	if len(edges) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(edges))
	}

	// a.go appears in 3 commits, b.go in 3, together in 2.
	ab := edges[0]
	if ab.FileA != "a.go" || ab.FileB != "b.go" {
		t.Fatalf("Expected a.go/b.go as strongest pair, got %s/%s", ab.FileA, ab.FileB)
	}
	if ab.ChangeCount != 2 || ab.TotalChanges != 3 {
		t.Errorf("Expected 2 co-changes over 3 total, got %d/%d", ab.ChangeCount, ab.TotalChanges)
	}
	if ab.Strength < 0.66 || ab.Strength > 0.67 {
		t.Errorf("Expected strength 2/3, got %f", ab.Strength)
	}
}

func TestBuildEdgesDeduplicatesWithinCommit(t *testing.T) {
	commits := [][]string{
		{"a.go", "a.go", "b.go"},
	}

	edges := BuildEdges(commits)
	if len(edges) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(edges))
	}
	if edges[0].ChangeCount != 1 {
		t.Errorf("Duplicate file within a commit must count once, got %d", edges[0].ChangeCount)
	}
}

func TestBuildEdgesSkipsBulkCommits(t *testing.T) {
	big := make([]string, maxFilesPerCommit+1)
	for i := range big {
		big[i] = "file" + string(rune('a'+i%26)) + itoa(i) + ".go"
	}

	edges := BuildEdges([][]string{big})
	if len(edges) != 0 {
		t.Errorf("Expected bulk commit to be skipped, got %d edges", len(edges))
	}
}

func TestBuildEdgesDeterministicOrder(t *testing.T) {
	commits := [][]string{
		{"x.go", "y.go"},
		{"a.go", "b.go"},
		{"a.go", "b.go", "x.go", "y.go"},
	}

	first := BuildEdges(commits)
	second := BuildEdges(commits)
	if len(first) != len(second) {
		t.Fatalf("Expected identical edge counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Edge %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i].Strength > first[i-1].Strength {
			t.Errorf("Edges not sorted by strength at index %d", i)
		}
	}
}
