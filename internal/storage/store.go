package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ckg/internal/kg"
)

// KnowledgeEdgeFilter restricts a knowledge edge query. Zero values mean
// "no constraint".
type KnowledgeEdgeFilter struct {
	EdgeType  kg.EdgeType
	SourceID  string
	MinWeight float64
	Limit     int
}

const knowledgeEdgeColumns = `id, source_id, target_id, source_type, target_type,
	edge_type, weight, confidence, metadata, computed_at`

// GetKnowledgeEdges returns knowledge edges matching the filter.
func (db *DB) GetKnowledgeEdges(filter KnowledgeEdgeFilter) ([]kg.Edge, error) {
	query := `SELECT ` + knowledgeEdgeColumns + ` FROM knowledge_edges WHERE 1=1`
	args := []interface{}{}

	if filter.EdgeType != "" {
		query += ` AND edge_type = ?`
		args = append(args, string(filter.EdgeType))
	}
	if filter.SourceID != "" {
		query += ` AND source_id = ?`
		args = append(args, filter.SourceID)
	}
	if filter.MinWeight > 0 {
		query += ` AND weight >= ?`
		args = append(args, filter.MinWeight)
	}
	query += ` ORDER BY weight DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge edges: %w", err)
	}
	defer rows.Close()

	return scanKnowledgeEdges(rows)
}

// GetKnowledgeEdgesFrom returns all edges originating at the given entity.
func (db *DB) GetKnowledgeEdgesFrom(id string) ([]kg.Edge, error) {
	rows, err := db.conn.Query(
		`SELECT `+knowledgeEdgeColumns+` FROM knowledge_edges WHERE source_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query outgoing edges: %w", err)
	}
	defer rows.Close()
	return scanKnowledgeEdges(rows)
}

// GetKnowledgeEdgesTo returns all edges pointing at the given entity.
func (db *DB) GetKnowledgeEdgesTo(id string) ([]kg.Edge, error) {
	rows, err := db.conn.Query(
		`SELECT `+knowledgeEdgeColumns+` FROM knowledge_edges WHERE target_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query incoming edges: %w", err)
	}
	defer rows.Close()
	return scanKnowledgeEdges(rows)
}

// UpsertKnowledgeEdges writes a batch of edges in one transaction. Edge ids
// are deterministic, so re-upserting the same triple replaces in place.
func (db *DB) UpsertKnowledgeEdges(edges []kg.Edge) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO knowledge_edges
			(id, source_id, target_id, source_type, target_type, edge_type,
			 weight, confidence, metadata, computed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range edges {
			var metadata interface{}
			if len(e.Metadata) > 0 {
				data, err := json.Marshal(e.Metadata)
				if err != nil {
					return fmt.Errorf("failed to marshal metadata for edge %s: %w", e.ID, err)
				}
				metadata = string(data)
			}
			if _, err := stmt.Exec(
				e.ID, e.SourceID, e.TargetID,
				string(e.SourceType), string(e.TargetType), string(e.Type),
				e.Weight, e.Confidence, metadata,
				e.ComputedAt.UTC().Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("failed to upsert edge %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// ClearKnowledgeEdges removes the full edge set. A rebuild replaces the
// prior set wholesale rather than patching in place.
func (db *DB) ClearKnowledgeEdges() error {
	_, err := db.conn.Exec(`DELETE FROM knowledge_edges`)
	return err
}

// CountKnowledgeEdgesByType returns edge counts per edge type.
func (db *DB) CountKnowledgeEdgesByType() (map[kg.EdgeType]int, error) {
	rows, err := db.conn.Query(
		`SELECT edge_type, COUNT(*) FROM knowledge_edges GROUP BY edge_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[kg.EdgeType]int)
	for rows.Next() {
		var edgeType string
		var count int
		if err := rows.Scan(&edgeType, &count); err != nil {
			return nil, err
		}
		counts[kg.EdgeType(edgeType)] = count
	}
	return counts, rows.Err()
}

// GetKnowledgeSubgraph returns all edges reachable from rootID within the
// given depth, optionally restricted to specific edge types. Traversal
// follows outgoing edges breadth-first.
func (db *DB) GetKnowledgeSubgraph(rootID string, depth int, edgeTypes []kg.EdgeType) ([]kg.Edge, error) {
	if depth <= 0 {
		depth = 1
	}
	allowed := make(map[kg.EdgeType]bool, len(edgeTypes))
	for _, t := range edgeTypes {
		allowed[t] = true
	}

	visited := map[string]bool{rootID: true}
	frontier := []string{rootID}
	var result []kg.Edge
	seenEdge := make(map[string]bool)

	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string
		for _, id := range frontier {
			edges, err := db.GetKnowledgeEdgesFrom(id)
			if err != nil {
				return nil, err
			}
			for _, e := range edges {
				if len(allowed) > 0 && !allowed[e.Type] {
					continue
				}
				if !seenEdge[e.ID] {
					seenEdge[e.ID] = true
					result = append(result, e)
				}
				if !visited[e.TargetID] {
					visited[e.TargetID] = true
					next = append(next, e.TargetID)
				}
			}
		}
		frontier = next
	}

	return result, nil
}

func scanKnowledgeEdges(rows *sql.Rows) ([]kg.Edge, error) {
	var edges []kg.Edge
	for rows.Next() {
		var e kg.Edge
		var sourceType, targetType, edgeType, computedAt string
		var metadata sql.NullString

		if err := rows.Scan(
			&e.ID, &e.SourceID, &e.TargetID, &sourceType, &targetType,
			&edgeType, &e.Weight, &e.Confidence, &metadata, &computedAt,
		); err != nil {
			return nil, err
		}

		e.SourceType = kg.EntityType(sourceType)
		e.TargetType = kg.EntityType(targetType)
		e.Type = kg.EdgeType(edgeType)
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &e.Metadata); err != nil {
				return nil, fmt.Errorf("corrupt metadata for edge %s: %w", e.ID, err)
			}
		}
		if ts, err := time.Parse(time.RFC3339, computedAt); err == nil {
			e.ComputedAt = ts
		}

		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// BuildSummary records the outcome of one knowledge graph build.
type BuildSummary struct {
	RunID       string              `json:"runId"`
	TotalEdges  int                 `json:"totalEdges"`
	EdgeCounts  map[kg.EdgeType]int `json:"edgeCounts"`
	Communities int                 `json:"communities"`
	DurationMs  int64               `json:"durationMs"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// RecordBuildSummary persists a build summary.
func (db *DB) RecordBuildSummary(s BuildSummary) error {
	counts, err := json.Marshal(s.EdgeCounts)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO build_summaries
		(run_id, total_edges, counts_json, communities, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.RunID, s.TotalEdges, string(counts), s.Communities, s.DurationMs,
		s.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// GetLastBuildSummary returns the most recent build summary, or nil if no
// build has run.
func (db *DB) GetLastBuildSummary() (*BuildSummary, error) {
	row := db.conn.QueryRow(`
		SELECT run_id, total_edges, counts_json, communities, duration_ms, created_at
		FROM build_summaries ORDER BY created_at DESC LIMIT 1
	`)

	var s BuildSummary
	var counts, createdAt string
	err := row.Scan(&s.RunID, &s.TotalEdges, &counts, &s.Communities, &s.DurationMs, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(counts), &s.EdgeCounts); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		s.CreatedAt = ts
	}
	return &s, nil
}
