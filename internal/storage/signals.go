package storage

import (
	"database/sql"
	"fmt"
	"time"

	"ckg/internal/kg"
)

// GraphEdgeFilter restricts raw structural edge queries.
type GraphEdgeFilter struct {
	Kind  string
	Limit int
}

// GetGraphEdges returns raw structural edges from the upstream extractor.
func (db *DB) GetGraphEdges(filter GraphEdgeFilter) ([]kg.GraphEdge, error) {
	query := `SELECT source_id, target_id, source_type, target_type, kind, confidence
		FROM graph_edges WHERE 1=1`
	args := []interface{}{}
	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, filter.Kind)
	}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query graph edges: %w", err)
	}
	defer rows.Close()

	var edges []kg.GraphEdge
	for rows.Next() {
		var e kg.GraphEdge
		var sourceType, targetType string
		if err := rows.Scan(&e.SourceID, &e.TargetID, &sourceType, &targetType, &e.Kind, &e.Confidence); err != nil {
			return nil, err
		}
		e.SourceType = kg.EntityType(sourceType)
		e.TargetType = kg.EntityType(targetType)
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// UpsertGraphEdges writes raw structural edges (used by SCIP ingestion).
func (db *DB) UpsertGraphEdges(edges []kg.GraphEdge) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO graph_edges
			(source_id, target_id, source_type, target_type, kind, confidence)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range edges {
			if _, err := stmt.Exec(e.SourceID, e.TargetID,
				string(e.SourceType), string(e.TargetType), e.Kind, e.Confidence); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetEntities returns all known entities with their containment parents.
func (db *DB) GetEntities() ([]kg.Entity, error) {
	rows, err := db.conn.Query(`SELECT id, type, parent FROM entities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []kg.Entity
	for rows.Next() {
		var e kg.Entity
		var entityType string
		var parent sql.NullString
		if err := rows.Scan(&e.ID, &entityType, &parent); err != nil {
			return nil, err
		}
		e.Type = kg.EntityType(entityType)
		if parent.Valid {
			e.Parent = parent.String
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// UpsertEntities writes entities with their containment parents.
func (db *DB) UpsertEntities(entities []kg.Entity) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO entities (id, type, parent) VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range entities {
			var parent interface{}
			if e.Parent != "" {
				parent = e.Parent
			}
			if _, err := stmt.Exec(e.ID, string(e.Type), parent); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetCloneEntries returns detected clone pairs, bounded by limit.
func (db *DB) GetCloneEntries(limit int) ([]kg.CloneEntry, error) {
	query := `SELECT entity_a, entity_b, similarity, clone_type FROM clone_entries
		ORDER BY similarity DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clone entries: %w", err)
	}
	defer rows.Close()

	var entries []kg.CloneEntry
	for rows.Next() {
		var e kg.CloneEntry
		var cloneType string
		if err := rows.Scan(&e.EntityA, &e.EntityB, &e.Similarity, &cloneType); err != nil {
			return nil, err
		}
		e.Type = kg.CloneType(cloneType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InsertCloneEntries writes clone pairs (upstream clone detector output).
func (db *DB) InsertCloneEntries(entries []kg.CloneEntry) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO clone_entries (entity_a, entity_b, similarity, clone_type)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.Exec(e.EntityA, e.EntityB, e.Similarity, string(e.Type)); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetBlameEntries returns blame line ranges, optionally for one file.
func (db *DB) GetBlameEntries(filePath string, limit int) ([]kg.BlameEntry, error) {
	query := `SELECT file_path, author, start_line, end_line FROM blame_entries WHERE 1=1`
	args := []interface{}{}
	if filePath != "" {
		query += ` AND file_path = ?`
		args = append(args, filePath)
	}
	query += ` ORDER BY file_path, start_line`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blame entries: %w", err)
	}
	defer rows.Close()

	var entries []kg.BlameEntry
	for rows.Next() {
		var e kg.BlameEntry
		if err := rows.Scan(&e.FilePath, &e.Author, &e.StartLine, &e.EndLine); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InsertBlameEntries writes blame line ranges.
func (db *DB) InsertBlameEntries(entries []kg.BlameEntry) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO blame_entries (file_path, author, start_line, end_line)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.Exec(e.FilePath, e.Author, e.StartLine, e.EndLine); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetDebtMetrics returns debt profiles, optionally for one entity.
func (db *DB) GetDebtMetrics(entityID string, limit int) ([]kg.DebtMetrics, error) {
	query := `SELECT entity_id, complexity, duplication, coupling, coverage, architecture, churn
		FROM debt_metrics WHERE 1=1`
	args := []interface{}{}
	if entityID != "" {
		query += ` AND entity_id = ?`
		args = append(args, entityID)
	}
	query += ` ORDER BY entity_id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debt metrics: %w", err)
	}
	defer rows.Close()

	var metrics []kg.DebtMetrics
	for rows.Next() {
		var m kg.DebtMetrics
		if err := rows.Scan(&m.EntityID, &m.Complexity, &m.Duplication,
			&m.Coupling, &m.Coverage, &m.Architecture, &m.Churn); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// UpsertDebtMetrics writes debt profiles.
func (db *DB) UpsertDebtMetrics(metrics []kg.DebtMetrics) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO debt_metrics
			(entity_id, complexity, duplication, coupling, coverage, architecture, churn)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, m := range metrics {
			if _, err := stmt.Exec(m.EntityID, m.Complexity, m.Duplication,
				m.Coupling, m.Coverage, m.Architecture, m.Churn); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetDiffRecords returns historical change records, optionally for one file.
func (db *DB) GetDiffRecords(filePath string, limit int) ([]kg.DiffRecord, error) {
	query := `SELECT file_path, change_category, commit_hash, author, timestamp
		FROM diff_records WHERE 1=1`
	args := []interface{}{}
	if filePath != "" {
		query += ` AND file_path = ?`
		args = append(args, filePath)
	}
	query += ` ORDER BY timestamp`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query diff records: %w", err)
	}
	defer rows.Close()

	var records []kg.DiffRecord
	for rows.Next() {
		var r kg.DiffRecord
		var timestamp string
		if err := rows.Scan(&r.FilePath, &r.ChangeCategory, &r.CommitHash, &r.Author, &timestamp); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
			r.Timestamp = ts
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertDiffRecords writes historical change records.
func (db *DB) InsertDiffRecords(records []kg.DiffRecord) error {
	return db.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO diff_records (file_path, change_category, commit_hash, author, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range records {
			if _, err := stmt.Exec(r.FilePath, r.ChangeCategory, r.CommitHash,
				r.Author, r.Timestamp.UTC().Format(time.RFC3339)); err != nil {
				return err
			}
		}
		return nil
	})
}
