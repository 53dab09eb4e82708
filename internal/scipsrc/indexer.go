package scipsrc

import (
	"context"
	"os"
	"time"

	"ckg/internal/logging"
	"ckg/internal/pipeline"
	"ckg/internal/storage"
	"ckg/internal/version"
)

// indexerPriority runs structural ingestion before the knowledge graph
// build.
const indexerPriority = 10

// Indexer ingests a SCIP index into the raw signal tables.
type Indexer struct {
	db        *storage.DB
	indexPath string
	logger    *logging.Logger
}

// NewIndexer creates the SCIP pipeline indexer.
func NewIndexer(db *storage.DB, indexPath string, logger *logging.Logger) *Indexer {
	return &Indexer{
		db:        db,
		indexPath: indexPath,
		logger:    logger,
	}
}

func (s *Indexer) ID() string      { return "scip-structural" }
func (s *Indexer) Name() string    { return "SCIP Structural Ingestion" }
func (s *Indexer) Version() string { return version.Version }
func (s *Indexer) Priority() int   { return indexerPriority }

// Probe reports whether the index file is present.
func (s *Indexer) Probe(ctx context.Context) bool {
	_, err := os.Stat(s.indexPath)
	return err == nil
}

// Ingest loads the index, derives entities and structural edges, and
// persists them as synthesizer input.
func (s *Indexer) Ingest(ctx context.Context) pipeline.IngestResult {
	start := time.Now()
	fail := func(err error) pipeline.IngestResult {
		return pipeline.IngestResult{
			Errors:     []string{err.Error()},
			DurationMs: time.Since(start).Milliseconds(),
		}
	}

	index, err := Load(s.indexPath)
	if err != nil {
		return fail(err)
	}

	entities, edges := Derive(index)
	if err := s.db.UpsertEntities(entities); err != nil {
		return fail(err)
	}
	if err := s.db.UpsertGraphEdges(edges); err != nil {
		return fail(err)
	}

	s.logger.Info("SCIP ingestion complete", map[string]interface{}{
		"indexPath": s.indexPath,
		"entities":  len(entities),
		"edges":     len(edges),
	})

	return pipeline.IngestResult{
		Items:      len(entities) + len(edges),
		DurationMs: time.Since(start).Milliseconds(),
	}
}
