package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stats (
			key TEXT PRIMARY KEY,
			stamina INTEGER NOT NULL DEFAULT 0,
			skills INTEGER NOT NULL DEFAULT 0,
			intelligence INTEGER NOT NULL DEFAULT 0,
			power INTEGER NOT NULL DEFAULT 0,
			time_management INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			tags TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			notes TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			completed_at DATETIME
		);`,
		// Newest entry has position 0. Rows past the cap are deleted, not archived.
		`CREATE TABLE IF NOT EXISTS progress_log (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			task_id INTEGER NOT NULL,
			task_name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			stat_delta TEXT NOT NULL,
			notes TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS stat_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stamina INTEGER NOT NULL,
			skills INTEGER NOT NULL,
			intelligence INTEGER NOT NULL,
			power INTEGER NOT NULL,
			time_management INTEGER NOT NULL,
			recorded_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rules (
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			delta TEXT NOT NULL,
			PRIMARY KEY (kind, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
		`CREATE INDEX IF NOT EXISTS idx_progress_log_position ON progress_log(position);`,
		`CREATE INDEX IF NOT EXISTS idx_stat_snapshots_recorded_at ON stat_snapshots(recorded_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release; ignore if already present.
	alterStmts := []string{
		`ALTER TABLE tasks ADD COLUMN applied_delta TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
