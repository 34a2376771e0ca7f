package storage

import (
	"database/sql"
	"fmt"
)

const migration001 = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	ended_at TEXT,
	duration_ms INTEGER,
	size INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	chaos_level INTEGER NOT NULL,
	scramble_text TEXT,
	notes TEXT,
	app_version TEXT
);

CREATE TABLE IF NOT EXISTS events (
	event_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL REFERENCES games(game_id),
	ts_ms INTEGER NOT NULL,
	event_type TEXT NOT NULL,
	payload_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_game ON events(game_id, ts_ms);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(game_id, event_type, ts_ms);

INSERT INTO schema_version (version) VALUES (1);
`

const migration002 = `
CREATE TABLE IF NOT EXISTS wins (
	win_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL REFERENCES games(game_id),
	ts_ms INTEGER NOT NULL,
	kind TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wins_game ON wins(game_id, ts_ms);

INSERT INTO schema_version (version) VALUES (2);
`

// migrations is an ordered list of migration SQL statements.
var migrations = []struct {
	version int
	sql     string
}{
	{1, migration001},
	{2, migration002},
}

// applyMigrations applies all pending migrations.
func applyMigrations(db *sql.DB) error {
	currentVersion := 0

	// Check if schema_version table exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check schema version table: %w", err)
	}

	if count > 0 {
		err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
		}
	}

	return nil
}

// InitSchema initializes the database schema (alias for MigrateUp).
func InitSchema(db *sql.DB) error {
	return applyMigrations(db)
}
