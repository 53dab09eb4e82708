package pipeline

import (
	"context"
	"time"

	"ckg/internal/storage"
	"ckg/internal/version"
)

// kgIndexerPriority places the knowledge graph build after all other
// graph-populating indexers in a shared pipeline.
const kgIndexerPriority = 90

// GraphBuilder produces the knowledge edge set from raw signals.
type GraphBuilder interface {
	Build(ctx context.Context) (*storage.BuildSummary, error)
}

// KGIndexer wraps the knowledge graph build as a pipeline indexer. It
// converts build failures into reported errors so the rest of the
// indexing run proceeds.
type KGIndexer struct {
	builder GraphBuilder
	db      *storage.DB
}

// NewKGIndexer creates the knowledge graph pipeline indexer.
func NewKGIndexer(builder GraphBuilder, db *storage.DB) *KGIndexer {
	return &KGIndexer{builder: builder, db: db}
}

func (k *KGIndexer) ID() string       { return "knowledge-graph" }
func (k *KGIndexer) Name() string     { return "Knowledge Graph Builder" }
func (k *KGIndexer) Version() string  { return version.Version }
func (k *KGIndexer) Priority() int    { return kgIndexerPriority }

// Probe reports whether the store is ready to build against.
func (k *KGIndexer) Probe(ctx context.Context) bool {
	return k.db.IsInitialized()
}

// Ingest runs a full knowledge graph build and reports the edge count.
func (k *KGIndexer) Ingest(ctx context.Context) IngestResult {
	start := time.Now()
	summary, err := k.builder.Build(ctx)
	if err != nil {
		return IngestResult{
			Errors:     []string{err.Error()},
			DurationMs: time.Since(start).Milliseconds(),
		}
	}
	return IngestResult{
		Items:      summary.TotalEdges,
		DurationMs: time.Since(start).Milliseconds(),
	}
}
