package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type LogRepo struct {
	db DBTX
}

func NewLogRepo(db DBTX) *LogRepo {
	return &LogRepo{db: db}
}

// List returns the stored log newest-first.
func (r *LogRepo) List(ctx context.Context) ([]LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, task_name, category, status, timestamp, stat_delta, notes
		FROM progress_log
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("log list: %w", err)
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var (
			e        LogEntry
			deltaRaw string
			notes    *string
		)
		if err := rows.Scan(&e.ID, &e.TaskID, &e.TaskName, &e.Category, &e.Status, &e.Timestamp, &deltaRaw, &notes); err != nil {
			return nil, fmt.Errorf("log scan: %w", err)
		}
		if err := json.Unmarshal([]byte(deltaRaw), &e.StatDelta); err != nil {
			return nil, fmt.Errorf("unmarshal stat delta for %s: %w", e.ID, err)
		}
		e.Notes = notes
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("log rows: %w", err)
	}
	return out, nil
}

// Replace overwrites the stored log with entries, which must be newest-first.
// Run it inside a transaction alongside the totals update.
func (r *LogRepo) Replace(ctx context.Context, entries []LogEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress_log`); err != nil {
		return fmt.Errorf("log clear: %w", err)
	}
	for i, e := range entries {
		data, err := json.Marshal(e.StatDelta)
		if err != nil {
			return fmt.Errorf("marshal stat delta: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO progress_log (id, position, task_id, task_name, category, status, timestamp, stat_delta, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, i, e.TaskID, e.TaskName, e.Category, e.Status, e.Timestamp, string(data), e.Notes); err != nil {
			return fmt.Errorf("log insert: %w", err)
		}
	}
	return nil
}

type SnapshotRepo struct {
	db DBTX
}

func NewSnapshotRepo(db DBTX) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

func (r *SnapshotRepo) Insert(ctx context.Context, s Stats, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO stat_snapshots (stamina, skills, intelligence, power, time_management, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.Stamina, s.Skills, s.Intelligence, s.Power, s.TimeManagement, at.UTC())
	if err != nil {
		return 0, fmt.Errorf("snapshot insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot last insert id: %w", err)
	}
	return id, nil
}

// ListSince returns snapshots recorded at or after since, oldest first.
func (r *SnapshotRepo) ListSince(ctx context.Context, since time.Time) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, stamina, skills, intelligence, power, time_management, recorded_at
		FROM stat_snapshots
		WHERE recorded_at >= ?
		ORDER BY recorded_at ASC, id ASC
	`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("snapshot list: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Totals.Stamina, &s.Totals.Skills, &s.Totals.Intelligence, &s.Totals.Power, &s.Totals.TimeManagement, &s.RecordedAt); err != nil {
			return nil, fmt.Errorf("snapshot scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rows: %w", err)
	}
	return out, nil
}
