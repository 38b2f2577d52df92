package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	Title     string
	Category  string
	Tags      []string
	Status    string
	Notes     *string
	CreatedAt time.Time
}

const taskColumns = `id, title, category, tags, status, notes, created_at, updated_at, completed_at, applied_delta`

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	tagsJSON, err := marshalTags(in.Tags)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, category, tags, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Category, tagsJSON, in.Status, in.Notes, in.CreatedAt, in.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

// Get returns nil, nil when the task does not exist.
func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTaskRow(row)
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id ASC`)
}

func (r *TaskRepo) ListByStatus(ctx context.Context, status string) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY id ASC`, status)
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// MarkCompleted stores the delta that landed so un-completing can reverse it exactly.
func (r *TaskRepo) MarkCompleted(ctx context.Context, id int64, at time.Time, applied Stats) error {
	data, err := json.Marshal(applied)
	if err != nil {
		return fmt.Errorf("marshal applied delta: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = 'completed', completed_at = ?, updated_at = ?, applied_delta = ?
		WHERE id = ?
	`, at, at, string(data), id)
	if err != nil {
		return fmt.Errorf("task mark completed: %w", err)
	}
	return nil
}

// MarkPending clears completion state.
func (r *TaskRepo) MarkPending(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = 'pending', completed_at = NULL, updated_at = ?, applied_delta = NULL
		WHERE id = ?
	`, at, id)
	if err != nil {
		return fmt.Errorf("task mark pending: %w", err)
	}
	return nil
}

func (r *TaskRepo) UpdateStatus(ctx context.Context, id int64, status string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`, status, at, id)
	if err != nil {
		return fmt.Errorf("task update status: %w", err)
	}
	return nil
}

// UpdateClassification changes category and tags. A completed task keeps its
// stored applied delta.
func (r *TaskRepo) UpdateClassification(ctx context.Context, id int64, category string, tags []string, at time.Time) error {
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE tasks SET category = ?, tags = ?, updated_at = ? WHERE id = ?`, category, tagsJSON, at, id)
	if err != nil {
		return fmt.Errorf("task update classification: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

func marshalTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	s := string(data)
	return &s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		t           Task
		tagsRaw     sql.NullString
		notes       sql.NullString
		completedAt sql.NullTime
		appliedRaw  sql.NullString
	)

	if err := row.Scan(
		&t.ID, &t.Title, &t.Category, &tagsRaw, &t.Status, &notes,
		&t.CreatedAt, &t.UpdatedAt, &completedAt, &appliedRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	if notes.Valid {
		v := notes.String
		t.Notes = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		t.CompletedAt = &v
	}
	if tagsRaw.Valid && tagsRaw.String != "" {
		if err := json.Unmarshal([]byte(tagsRaw.String), &t.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if appliedRaw.Valid && appliedRaw.String != "" {
		var s Stats
		if err := json.Unmarshal([]byte(appliedRaw.String), &s); err != nil {
			return nil, fmt.Errorf("unmarshal applied delta: %w", err)
		}
		t.AppliedDelta = &s
	}
	return &t, nil
}
