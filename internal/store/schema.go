package store

import (
	"database/sql"
	"fmt"
)

// Every event table carries the global sequence so rows of different types
// can be ordered against each other.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp DATETIME NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		strategy TEXT NOT NULL,
		deck TEXT NOT NULL DEFAULT '',
		item_count INTEGER NOT NULL DEFAULT 0,
		cluster_count INTEGER NOT NULL DEFAULT 0,
		rounds TEXT NOT NULL DEFAULT '',
		answers INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_session ON session_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS cluster_assignments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp DATETIME NOT NULL,
		session_id TEXT NOT NULL,
		cluster_id INTEGER NOT NULL,
		item_index INTEGER NOT NULL,
		item_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS cluster_assignments_session ON cluster_assignments (session_id)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp DATETIME NOT NULL,
		session_id TEXT NOT NULL,
		item_index INTEGER NOT NULL,
		item_id TEXT NOT NULL DEFAULT '',
		cluster_id INTEGER NOT NULL DEFAULT -1,
		round_id INTEGER NOT NULL DEFAULT 0,
		times_seen INTEGER NOT NULL,
		response TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session ON answer_events (session_id, sequence)`,
}

// migrate creates any missing tables and indexes.
func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
