// Package query runs analytical queries over the persisted knowledge
// edge set: clone clustering, debt hotspot ranking, ownership mapping,
// change impact analysis, and evolution timelines.
package query

import (
	"ckg/internal/config"
	"ckg/internal/kg"
	"ckg/internal/logging"
	"ckg/internal/storage"
)

// Engine answers analytical queries against the knowledge store.
// Missing or empty upstream data yields empty results, not errors.
type Engine struct {
	db     *storage.DB
	cfg    config.QueryConfig
	logger *logging.Logger
}

// NewEngine creates a query engine over the given store.
func NewEngine(db *storage.DB, cfg config.QueryConfig, logger *logging.Logger) *Engine {
	return &Engine{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Subgraph returns the bounded-depth knowledge subgraph rooted at an
// entity, delegating directly to the store.
func (e *Engine) Subgraph(rootID string, depth int, edgeTypes []kg.EdgeType) ([]kg.Edge, error) {
	return e.db.GetKnowledgeSubgraph(rootID, depth, edgeTypes)
}
