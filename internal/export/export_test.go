package export

import (
	"bytes"
	"testing"
	"time"

	"ckg/internal/kg"
	"ckg/internal/logging"
	"ckg/internal/storage"
)

func setupExporter(t *testing.T) *Exporter {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	db, err := storage.Open(t.TempDir(), ".ckg", logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	edges := []kg.Edge{
		{
			ID:         kg.EdgeID("a.go", "b.go", kg.EdgeImports),
			SourceID:   "a.go",
			TargetID:   "b.go",
			SourceType: kg.EntityFile,
			TargetType: kg.EntityFile,
			Type:       kg.EdgeImports,
			Weight:     0.9,
			Confidence: 1.0,
			ComputedAt: time.Now().UTC().Truncate(time.Second),
		},
	}
	if err := db.UpsertKnowledgeEdges(edges); err != nil {
		t.Fatal(err)
	}
	return NewExporter(db, logger)
}

func TestExportJSONRoundTrip(t *testing.T) {
	e := setupExporter(t)

	var buf bytes.Buffer
	if err := e.Export(&buf, Options{Format: FormatJSON}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	snapshot, err := ReadSnapshot(&buf, FormatJSON, false)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if snapshot.TotalEdges != 1 || len(snapshot.Edges) != 1 {
		t.Errorf("Expected 1 edge in snapshot, got %+v", snapshot)
	}
	if snapshot.Edges[0].SourceID != "a.go" {
		t.Errorf("Unexpected edge: %+v", snapshot.Edges[0])
	}
	if snapshot.EdgeCounts[kg.EdgeImports] != 1 {
		t.Errorf("Unexpected counts: %v", snapshot.EdgeCounts)
	}
}

func TestExportYAML(t *testing.T) {
	e := setupExporter(t)

	var buf bytes.Buffer
	if err := e.Export(&buf, Options{Format: FormatYAML}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	snapshot, err := ReadSnapshot(&buf, FormatYAML, false)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if snapshot.TotalEdges != 1 {
		t.Errorf("Expected 1 edge, got %d", snapshot.TotalEdges)
	}
}

func TestExportCompressed(t *testing.T) {
	e := setupExporter(t)

	var plain, compressed bytes.Buffer
	if err := e.Export(&plain, Options{Format: FormatJSON}); err != nil {
		t.Fatal(err)
	}
	if err := e.Export(&compressed, Options{Format: FormatJSON, Compress: true}); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(plain.Bytes(), compressed.Bytes()) {
		t.Error("Compressed output must differ from plain output")
	}

	snapshot, err := ReadSnapshot(&compressed, FormatJSON, true)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if snapshot.TotalEdges != 1 {
		t.Errorf("Expected 1 edge after decompression, got %d", snapshot.TotalEdges)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	e := setupExporter(t)
	var buf bytes.Buffer
	if err := e.Export(&buf, Options{Format: "xml"}); err == nil {
		t.Error("Expected error for unknown format")
	}
}
