package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	RuleKindCategory = "category"
	RuleKindTag      = "tag"
)

// RuleRepo stores user-defined rules layered over the built-in tables.
type RuleRepo struct {
	db DBTX
}

func NewRuleRepo(db DBTX) *RuleRepo {
	return &RuleRepo{db: db}
}

func (r *RuleRepo) Upsert(ctx context.Context, rule Rule) error {
	data, err := json.Marshal(rule.Delta)
	if err != nil {
		return fmt.Errorf("marshal rule delta: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO rules (kind, name, delta) VALUES (?, ?, ?)
		ON CONFLICT(kind, name) DO UPDATE SET delta = excluded.delta
	`, rule.Kind, rule.Name, string(data))
	if err != nil {
		return fmt.Errorf("rule upsert: %w", err)
	}
	return nil
}

// Delete reports whether a rule was removed.
func (r *RuleRepo) Delete(ctx context.Context, kind, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rules WHERE kind = ? AND name = ?`, kind, name)
	if err != nil {
		return false, fmt.Errorf("rule delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rule delete rows: %w", err)
	}
	return n > 0, nil
}

func (r *RuleRepo) ListAll(ctx context.Context) ([]Rule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, name, delta FROM rules ORDER BY kind ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("rule list: %w", err)
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var (
			rule Rule
			raw  string
		)
		if err := rows.Scan(&rule.Kind, &rule.Name, &raw); err != nil {
			return nil, fmt.Errorf("rule scan: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &rule.Delta); err != nil {
			return nil, fmt.Errorf("unmarshal rule %s/%s: %w", rule.Kind, rule.Name, err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rule rows: %w", err)
	}
	return out, nil
}
