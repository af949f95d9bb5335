package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS enum_types (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_enum_types_name ON enum_types(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS enum_values (
		enum_type_id TEXT NOT NULL REFERENCES enum_types(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		value        TEXT NOT NULL,
		PRIMARY KEY (enum_type_id, position),
		UNIQUE (enum_type_id, value)
	)`,

	// parent_id has no foreign key: a snapshot is written in list order and a
	// child may precede its parent.
	`CREATE TABLE IF NOT EXISTS flags (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id    TEXT,
		name         TEXT NOT NULL,
		type         TEXT NOT NULL CHECK(type IN ('boolean','enum')),
		bool_value   INTEGER NOT NULL DEFAULT 0,
		enum_type_id TEXT REFERENCES enum_types(id) ON DELETE CASCADE,
		enum_value   TEXT NOT NULL DEFAULT '',
		position     INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_flags_project ON flags(project_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_flags_parent ON flags(parent_id)`,

	`CREATE TABLE IF NOT EXISTS collapsed_flags (
		flag_id TEXT PRIMARY KEY
	)`,

	`CREATE TABLE IF NOT EXISTS view_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS auth_sessions (
		token      TEXT PRIMARY KEY,
		user_name  TEXT NOT NULL,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_auth_sessions_expires ON auth_sessions(expires_at)`,

	// Projects gained an explicit sidebar order.
	`ALTER TABLE projects ADD COLUMN position INTEGER NOT NULL DEFAULT 0`,
}
