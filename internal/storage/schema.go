package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 1

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		sources INTEGER NOT NULL,
		classes INTEGER NOT NULL,
		declarations INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS declarations (
		id INTEGER PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(id),
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		qualified_name TEXT NOT NULL,
		container TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL,
		line INTEGER NOT NULL,
		modifiers TEXT NOT NULL DEFAULT '',
		signature TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT ''
	)`,
	"CREATE INDEX IF NOT EXISTS idx_declarations_name ON declarations(name)",
	"CREATE INDEX IF NOT EXISTS idx_declarations_qualified_name ON declarations(qualified_name)",
	`CREATE TABLE IF NOT EXISTS doc_tags (
		declaration_id INTEGER NOT NULL REFERENCES declarations(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		line INTEGER NOT NULL,
		PRIMARY KEY (declaration_id, position)
	)`,
	"CREATE INDEX IF NOT EXISTS idx_doc_tags_name ON doc_tags(name)",
	`CREATE VIRTUAL TABLE IF NOT EXISTS declarations_fts USING fts5(
		name,
		qualified_name,
		comment,
		content='declarations',
		content_rowid='id'
	)`,
	`CREATE TRIGGER IF NOT EXISTS declarations_fts_ai AFTER INSERT ON declarations BEGIN
		INSERT INTO declarations_fts(rowid, name, qualified_name, comment)
		VALUES (new.id, new.name, new.qualified_name, new.comment);
	END`,
	`CREATE TRIGGER IF NOT EXISTS declarations_fts_ad AFTER DELETE ON declarations BEGIN
		INSERT INTO declarations_fts(declarations_fts, rowid, name, qualified_name, comment)
		VALUES ('delete', old.id, old.name, old.qualified_name, old.comment);
	END`,
}

// migrate creates missing tables and records the schema version. An index
// written by a newer schema is rejected.
func (db *DB) migrate(ctx context.Context) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}

		var version int
		err := tx.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
				return err
			}
			db.logger.Info("Index schema initialized", "version", currentSchemaVersion, "path", db.path)
		case err != nil:
			return err
		case version > currentSchemaVersion:
			return fmt.Errorf("index schema version %d is newer than supported %d", version, currentSchemaVersion)
		}
		return nil
	})
}
