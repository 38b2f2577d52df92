package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const MainStatsKey = "main_user"

type StatsRepo struct {
	db DBTX
}

func NewStatsRepo(db DBTX) *StatsRepo {
	return &StatsRepo{db: db}
}

// Get returns nil, nil when no totals row exists yet.
func (r *StatsRepo) Get(ctx context.Context) (*Stats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT stamina, skills, intelligence, power, time_management
		FROM stats WHERE key = ?
	`, MainStatsKey)

	var s Stats
	if err := row.Scan(&s.Stamina, &s.Skills, &s.Intelligence, &s.Power, &s.TimeManagement); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats get: %w", err)
	}
	return &s, nil
}

// GetOrCreate seeds the totals row with baseline on first use.
func (r *StatsRepo) GetOrCreate(ctx context.Context, baseline Stats) (*Stats, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO stats (key, stamina, skills, intelligence, power, time_management, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, MainStatsKey, baseline.Stamina, baseline.Skills, baseline.Intelligence, baseline.Power, baseline.TimeManagement, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("stats insert: %w", err)
	}
	return r.Get(ctx)
}

func (r *StatsRepo) Update(ctx context.Context, s Stats, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stats
		SET stamina = ?, skills = ?, intelligence = ?, power = ?, time_management = ?, updated_at = ?
		WHERE key = ?
	`, s.Stamina, s.Skills, s.Intelligence, s.Power, s.TimeManagement, at, MainStatsKey)
	if err != nil {
		return fmt.Errorf("stats update: %w", err)
	}
	return nil
}
