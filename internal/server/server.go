// Package server exposes the scoring service over a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"statline/internal/engine"
	"statline/internal/metrics"
)

// Config for the HTTP API handler.
type Config struct {
	Service *engine.Service
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
	// Location sets period boundaries for /api/trend. Defaults to UTC.
	Location *time.Location
}

// New returns an HTTP handler exposing the Statline API under /api.
func New(cfg Config) (http.Handler, error) {
	if cfg.Service == nil {
		return nil, errors.New("server: service is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(cfg.Logger, cfg.Metrics))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", cfg.Metrics.Handler())

	hcfg := huma.DefaultConfig("Statline API", "0.1.0")
	hcfg.OpenAPIPath = "/api/openapi"
	hcfg.DocsPath = ""
	hcfg.SchemasPath = "/api/schemas"
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, "/api")

	registerStats(group, cfg.Service)
	registerLog(group, cfg.Service)
	registerTrend(group, cfg.Service, cfg.Location)
	registerRules(group, cfg.Service)
	registerTasks(group, cfg.Service)

	return router, nil
}

// requestLogger counts each request by route pattern and status and writes a
// debug access line.
func requestLogger(log zerolog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			m.RecordRequest(route, strconv.Itoa(status))
			log.Debug().
				Str("method", r.Method).
				Str("route", route).
				Int("status", status).
				Dur("took", time.Since(start)).
				Msg("http request")
		})
	}
}

func handleError(err error) error {
	if err == nil {
		return nil
	}
	var nf engine.TaskNotFoundError
	if errors.As(err, &nf) {
		return huma.Error404NotFound(err.Error())
	}
	var se engine.TaskStateError
	if errors.As(err, &se) {
		return huma.Error409Conflict(err.Error())
	}
	var ie engine.InvalidInputError
	if errors.As(err, &ie) || errors.Is(err, engine.ErrUnknownPeriod) {
		return huma.Error400BadRequest(err.Error())
	}
	return huma.Error500InternalServerError("internal error", err)
}

// Serve runs the handler on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
