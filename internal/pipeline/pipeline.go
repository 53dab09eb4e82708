// Package pipeline defines the shared ingestion contract and a
// priority-ordered registry of indexers.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"ckg/internal/logging"
)

// IngestResult is the outcome of one indexer run. A failed run reports
// errors instead of propagating them, so one indexer cannot abort the
// whole pipeline.
type IngestResult struct {
	Items      int      `json:"items"`
	Errors     []string `json:"errors"`
	DurationMs int64    `json:"durationMs"`
}

// Indexer is a pipeline participant. Lower priorities run first.
type Indexer interface {
	ID() string
	Name() string
	Version() string
	Priority() int
	Probe(ctx context.Context) bool
	Ingest(ctx context.Context) IngestResult
}

// RunReport records one indexer's outcome within a pipeline run.
type RunReport struct {
	RunID     string       `json:"runId"`
	IndexerID string       `json:"indexerId"`
	Name      string       `json:"name"`
	Version   string       `json:"version"`
	Skipped   bool         `json:"skipped"`
	Result    IngestResult `json:"result"`
}

// Registry holds registered indexers and runs them in priority order.
type Registry struct {
	indexers []Indexer
	logger   *logging.Logger
}

// NewRegistry creates an empty indexer registry.
func NewRegistry(logger *logging.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds an indexer to the registry.
func (r *Registry) Register(indexer Indexer) {
	r.indexers = append(r.indexers, indexer)
}

// Run probes and runs every registered indexer in ascending priority
// order. Indexers whose probe fails are reported as skipped. A panic
// inside an indexer is captured as an error in its report.
func (r *Registry) Run(ctx context.Context) []RunReport {
	ordered := make([]Indexer, len(r.indexers))
	copy(ordered, r.indexers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	runID := uuid.New().String()
	reports := make([]RunReport, 0, len(ordered))
	for _, indexer := range ordered {
		report := RunReport{
			RunID:     runID,
			IndexerID: indexer.ID(),
			Name:      indexer.Name(),
			Version:   indexer.Version(),
		}

		if !indexer.Probe(ctx) {
			report.Skipped = true
			r.logger.Debug("Indexer probe failed, skipping", map[string]interface{}{
				"indexer": indexer.ID(),
			})
			reports = append(reports, report)
			continue
		}

		report.Result = r.runOne(ctx, indexer)
		if len(report.Result.Errors) > 0 {
			r.logger.Warn("Indexer completed with errors", map[string]interface{}{
				"indexer": indexer.ID(),
				"errors":  report.Result.Errors,
			})
		}
		reports = append(reports, report)
	}
	return reports
}

func (r *Registry) runOne(ctx context.Context, indexer Indexer) (result IngestResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			result = IngestResult{
				Errors:     []string{fmt.Sprintf("indexer %s panicked: %v", indexer.ID(), rec)},
				DurationMs: time.Since(start).Milliseconds(),
			}
		}
	}()
	return indexer.Ingest(ctx)
}
