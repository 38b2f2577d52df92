package root

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"

	"statline/internal/config"
	"statline/internal/engine"
	"statline/internal/logging"
	"statline/internal/metrics"
	"statline/internal/storage"
)

func loadConfig() (*config.Config, error) {
	return config.FromViper(settings)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	metrics *metrics.Metrics
	svc     *engine.Service
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cfg)
	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	m := metrics.New()
	svc := engine.NewService(db,
		engine.WithLogger(log),
		engine.WithRecorder(m),
		engine.WithRules(rules.Table, rules.Baseline),
	)
	log.Debug().Str("rules", cfg.RulesPath).Msg("service ready")
	return &app{cfg: cfg, log: log, metrics: m, svc: svc}, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.svc, cleanup, nil
}

func jsonOutput() bool {
	return settings.GetBool("json")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
