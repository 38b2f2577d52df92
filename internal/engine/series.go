package engine

import (
	"context"
	"fmt"
	"time"

	"statline/internal/storage"
)

// Series buckets the retained progress log for trend display.
func (s *Service) Series(ctx context.Context, period AggregationPeriod, opts BucketOptions) (ProgressLogSeries, error) {
	if !period.IsValid() {
		return ProgressLogSeries{}, ErrUnknownPeriod
	}
	rows, err := s.logs.List(ctx)
	if err != nil {
		return ProgressLogSeries{}, err
	}
	entries := logFromStorage(rows)
	if ExceedsMaxBuckets(entries, period, opts) {
		return ProgressLogSeries{}, InvalidInputError{
			Field:  "range",
			Reason: fmt.Sprintf("more than %d %s buckets; narrow from/to or use a longer period", MaxBuckets, period),
		}
	}
	return ProgressLogSeries{
		Entries: entries,
		Buckets: Bucket(entries, period, opts),
	}, nil
}

// Snapshots returns recorded totals since the given time, oldest first.
func (s *Service) Snapshots(ctx context.Context, since time.Time) ([]StatSnapshot, error) {
	rows, err := s.snapshots.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]StatSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, StatSnapshot{Totals: vectorFromStorage(r.Totals), RecordedAt: r.RecordedAt})
	}
	return out, nil
}

type RuleKind string

const (
	RuleCategory RuleKind = storage.RuleKindCategory
	RuleTag      RuleKind = storage.RuleKindTag
)

func ParseRuleKind(input string) (RuleKind, error) {
	switch RuleKind(input) {
	case RuleCategory, "categories", "cat":
		return RuleCategory, nil
	case RuleTag, "tags":
		return RuleTag, nil
	default:
		return "", InvalidInputError{Field: "rule kind", Reason: input}
	}
}

// SetRule stores a category or tag rule that overrides the configured table.
// It affects future completions only; stored deltas of completed tasks are kept.
func (s *Service) SetRule(ctx context.Context, kind RuleKind, name string, delta StatVector) error {
	name = ParseCategory(name)
	if name == "" {
		return InvalidInputError{Field: "rule name", Reason: "name is required"}
	}
	return s.rules.Upsert(ctx, storage.Rule{Kind: string(kind), Name: name, Delta: vectorToStorage(delta)})
}

// DeleteRule removes a stored override. Built-in rules cannot be removed this way.
func (s *Service) DeleteRule(ctx context.Context, kind RuleKind, name string) (bool, error) {
	return s.rules.Delete(ctx, string(kind), ParseCategory(name))
}
