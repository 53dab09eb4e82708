package storage

import (
	"database/sql"
	"fmt"
)

// Schema version tracking
const currentSchemaVersion = 1

// initializeSchema creates all tables for a new database
func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		statements := []string{
			`CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS entities (
				id TEXT PRIMARY KEY,
				type TEXT NOT NULL,
				parent TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS graph_edges (
				source_id TEXT NOT NULL,
				target_id TEXT NOT NULL,
				source_type TEXT NOT NULL,
				target_type TEXT NOT NULL,
				kind TEXT NOT NULL,
				confidence REAL NOT NULL DEFAULT 1.0,
				PRIMARY KEY (source_id, target_id, kind)
			)`,
			`CREATE TABLE IF NOT EXISTS clone_entries (
				entity_a TEXT NOT NULL,
				entity_b TEXT NOT NULL,
				similarity REAL NOT NULL,
				clone_type TEXT NOT NULL,
				PRIMARY KEY (entity_a, entity_b)
			)`,
			`CREATE TABLE IF NOT EXISTS blame_entries (
				file_path TEXT NOT NULL,
				author TEXT NOT NULL,
				start_line INTEGER NOT NULL,
				end_line INTEGER NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_blame_file ON blame_entries(file_path)`,
			`CREATE TABLE IF NOT EXISTS debt_metrics (
				entity_id TEXT PRIMARY KEY,
				complexity REAL NOT NULL DEFAULT 0,
				duplication REAL NOT NULL DEFAULT 0,
				coupling REAL NOT NULL DEFAULT 0,
				coverage REAL NOT NULL DEFAULT 0,
				architecture REAL NOT NULL DEFAULT 0,
				churn REAL NOT NULL DEFAULT 0
			)`,
			`CREATE TABLE IF NOT EXISTS diff_records (
				file_path TEXT NOT NULL,
				change_category TEXT NOT NULL,
				commit_hash TEXT NOT NULL,
				author TEXT NOT NULL,
				timestamp TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_diff_file ON diff_records(file_path)`,
			`CREATE TABLE IF NOT EXISTS knowledge_edges (
				id TEXT PRIMARY KEY,
				source_id TEXT NOT NULL,
				target_id TEXT NOT NULL,
				source_type TEXT NOT NULL,
				target_type TEXT NOT NULL,
				edge_type TEXT NOT NULL,
				weight REAL NOT NULL,
				confidence REAL NOT NULL,
				metadata TEXT,
				computed_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_ke_source ON knowledge_edges(source_id)`,
			`CREATE INDEX IF NOT EXISTS idx_ke_target ON knowledge_edges(target_id)`,
			`CREATE INDEX IF NOT EXISTS idx_ke_type ON knowledge_edges(edge_type)`,
			`CREATE TABLE IF NOT EXISTS build_summaries (
				run_id TEXT PRIMARY KEY,
				total_edges INTEGER NOT NULL,
				counts_json TEXT NOT NULL,
				communities INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL,
				created_at TEXT NOT NULL
			)`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to create schema: %w", err)
			}
		}

		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return err
		}

		db.logger.Info("Graph store schema initialized", map[string]interface{}{
			"version": currentSchemaVersion,
		})
		return nil
	})
}

// runMigrations runs any pending schema migrations
func (db *DB) runMigrations() error {
	var version int
	err := db.conn.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if err != nil {
		// Old or foreign database without version tracking: rebuild schema.
		return db.initializeSchema()
	}

	if version == currentSchemaVersion {
		return nil
	}

	db.logger.Info("Running graph store migrations", map[string]interface{}{
		"from_version": version,
		"to_version":   currentSchemaVersion,
	})

	// Migrations are added here as the schema evolves.
	return nil
}
