package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"statline/internal/storage"
)

// Recorder receives scoring events. *metrics.Metrics satisfies it.
type Recorder interface {
	RecordEvent(status string, saturated []string)
	SetTotal(stat string, value int)
}

type nopRecorder struct{}

func (nopRecorder) RecordEvent(string, []string) {}
func (nopRecorder) SetTotal(string, int)         {}

// Service persists tasks, totals and the progress log, and runs toggles through
// the pure scoring functions.
type Service struct {
	db        *sql.DB
	tasks     *storage.TaskRepo
	stats     *storage.StatsRepo
	logs      *storage.LogRepo
	snapshots *storage.SnapshotRepo
	rules     *storage.RuleRepo

	baseRules RuleTable
	baseline  StatVector

	logger   zerolog.Logger
	recorder Recorder
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithRules replaces the built-in rule table and starting totals.
func WithRules(rules RuleTable, baseline StatVector) Option {
	return func(s *Service) {
		s.baseRules = rules
		s.baseline = Clamp(baseline)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		tasks:     storage.NewTaskRepo(db),
		stats:     storage.NewStatsRepo(db),
		logs:      storage.NewLogRepo(db),
		snapshots: storage.NewSnapshotRepo(db),
		rules:     storage.NewRuleRepo(db),
		baseRules: DefaultRules(),
		baseline:  DefaultBaseline(),
		logger:    zerolog.Nop(),
		recorder:  nopRecorder{},
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TaskRepo() *storage.TaskRepo { return s.tasks }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", InvalidInputError{Field: "title", Reason: "title is required"}
	}
	return t, nil
}

// State returns the current totals and progress log. The totals row is seeded
// with the baseline on first use.
func (s *Service) State(ctx context.Context) (State, error) {
	return s.loadState(ctx, s.stats, s.logs)
}

func (s *Service) loadState(ctx context.Context, stats *storage.StatsRepo, logs *storage.LogRepo) (State, error) {
	totals, err := stats.GetOrCreate(ctx, vectorToStorage(s.baseline))
	if err != nil {
		return State{}, err
	}
	rows, err := logs.List(ctx)
	if err != nil {
		return State{}, err
	}
	return State{
		Totals: Clamp(vectorFromStorage(*totals)),
		Log:    logFromStorage(rows),
	}, nil
}

// Rules returns the configured table with stored overrides layered on top.
func (s *Service) Rules(ctx context.Context) (RuleTable, error) {
	return s.rulesFrom(ctx, s.rules)
}

func (s *Service) rulesFrom(ctx context.Context, repo *storage.RuleRepo) (RuleTable, error) {
	stored, err := repo.ListAll(ctx)
	if err != nil {
		return RuleTable{}, err
	}
	if len(stored) == 0 {
		return s.baseRules, nil
	}
	cats := map[string]StatVector{}
	tags := map[string]StatVector{}
	for _, r := range stored {
		switch r.Kind {
		case storage.RuleKindCategory:
			cats[r.Name] = vectorFromStorage(r.Delta)
		case storage.RuleKindTag:
			tags[r.Name] = vectorFromStorage(r.Delta)
		default:
			s.logger.Warn().Str("kind", r.Kind).Str("name", r.Name).Msg("ignoring stored rule with unknown kind")
		}
	}
	return s.baseRules.Merge(NewRuleTable(cats, tags)), nil
}

func (s *Service) getTask(ctx context.Context, repo *storage.TaskRepo, id int64) (*storage.Task, error) {
	t, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, TaskNotFoundError{ID: id}
	}
	return t, nil
}

// IsNotFound reports whether err is a TaskNotFoundError.
func IsNotFound(err error) bool {
	var nf TaskNotFoundError
	return errors.As(err, &nf)
}
