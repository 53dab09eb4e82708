// Package synth builds the typed knowledge edge set from heterogeneous
// raw signals: structural AST edges, clone pairs, mined co-change
// history, blame ownership, debt profiles, and the entity hierarchy.
package synth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ckg/internal/config"
	"ckg/internal/errors"
	"ckg/internal/graphalg"
	"ckg/internal/kg"
	"ckg/internal/logging"
	"ckg/internal/storage"
	"ckg/internal/temporal"
)

// TemporalMiner supplies co-change pairs from version history.
type TemporalMiner interface {
	BuildTemporalGraph(ctx context.Context, maxCommits int) (*kg.TemporalGraph, error)
}

// Synthesizer orchestrates a full knowledge graph build: fetch raw
// signals, run the per-source phases, filter, and persist one batch.
type Synthesizer struct {
	db     *storage.DB
	miner  TemporalMiner
	cfg    config.SynthesizerConfig
	logger *logging.Logger
}

// New creates a synthesizer over the given store and miner.
func New(db *storage.DB, miner TemporalMiner, cfg config.SynthesizerConfig, logger *logging.Logger) *Synthesizer {
	return &Synthesizer{
		db:     db,
		miner:  miner,
		cfg:    cfg,
		logger: logger,
	}
}

var _ TemporalMiner = (*temporal.Miner)(nil)

// Build regenerates the full knowledge edge set and replaces the
// persisted one. Each phase produces an independent edge list; a store
// or miner failure aborts the batch.
func (s *Synthesizer) Build(ctx context.Context) (*storage.BuildSummary, error) {
	if !s.db.IsInitialized() {
		return nil, errors.New(errors.StoreNotInitialized, "knowledge store has no schema", nil)
	}

	start := time.Now()
	now := start.UTC()

	raw, err := s.db.GetGraphEdges(storage.GraphEdgeFilter{})
	if err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}
	clones, err := s.db.GetCloneEntries(0)
	if err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}
	blame, err := s.db.GetBlameEntries("", 0)
	if err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}
	debt, err := s.db.GetDebtMetrics("", 0)
	if err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}
	entities, err := s.db.GetEntities()
	if err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}

	var temporalGraph *kg.TemporalGraph
	if s.miner != nil {
		temporalGraph, err = s.miner.BuildTemporalGraph(ctx, s.cfg.MaxCommits)
		if err != nil {
			return nil, errors.Wrap(err, errors.BuildFailed)
		}
	}

	var all []kg.Edge
	all = append(all, StructuralEdges(raw, now)...)
	all = append(all, CloneEdges(clones, now)...)
	all = append(all, CoChangeEdges(temporalGraph, s.cfg.MinCoChange, s.cfg.MinCoChangeCount, now)...)
	all = append(all, AuthorshipEdges(blame, s.cfg.MinOwnership, now)...)
	all = append(all, DebtEdges(debt, s.cfg.DebtThreshold, s.cfg.DebtSimilarity, now)...)
	all = append(all, HierarchyEdges(entities, now)...)

	filtered := FilterEdges(all, s.cfg.MinEdgeWeight)
	counts := CountByType(filtered)

	// Community count over the filtered edge graph is diagnostic only.
	adj := make(graphalg.Adjacency)
	for _, e := range filtered {
		adj.AddEdge(e.SourceID, e.TargetID, e.Weight)
	}
	communities := graphalg.CommunityCount(graphalg.DetectCommunities(adj))

	if err := s.db.ClearKnowledgeEdges(); err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}
	if err := s.db.UpsertKnowledgeEdges(filtered); err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}

	summary := storage.BuildSummary{
		RunID:       uuid.New().String(),
		TotalEdges:  len(filtered),
		EdgeCounts:  counts,
		Communities: communities,
		DurationMs:  time.Since(start).Milliseconds(),
		CreatedAt:   now,
	}
	if err := s.db.RecordBuildSummary(summary); err != nil {
		return nil, errors.Wrap(err, errors.BuildFailed)
	}

	s.logger.Info("Knowledge graph build complete", map[string]interface{}{
		"runId":       summary.RunID,
		"totalEdges":  summary.TotalEdges,
		"communities": summary.Communities,
		"durationMs":  summary.DurationMs,
	})

	return &summary, nil
}
