package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statline/internal/engine"
	"statline/internal/metrics"
	"statline/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Service) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	svc := engine.NewService(db, engine.WithClock(func() time.Time { return clock }))
	handler, err := New(Config{Service: svc, Metrics: metrics.New(), Logger: zerolog.Nop()})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, svc
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestStatsStartAtBaseline(t *testing.T) {
	srv, _ := newTestServer(t)

	var body StatsResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/stats", &body))
	assert.Equal(t, engine.DefaultBaseline(), body.Totals)
	assert.Zero(t, body.LogSize)
}

func TestToggleFlow(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, engine.CreateTaskInput{Title: "Read a chapter", Category: "learning", Tags: []string{"deepWork"}})
	require.NoError(t, err)

	url := srv.URL + "/api/tasks/" + strconv.FormatInt(created.TaskID, 10) + "/toggle"
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var toggled ToggleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	assert.True(t, toggled.Completed)
	assert.Equal(t, engine.Vec(0, 7, 9, 2, 3), toggled.Applied)
	assert.Equal(t, engine.Vec(72, 71, 87, 62, 58), toggled.Totals)
	assert.Equal(t, engine.EntryCompleted, toggled.Entry.Status)

	var log LogResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/log", &log))
	require.Len(t, log.Entries, 1)
	assert.Equal(t, toggled.Applied, log.Net)

	var tasks TasksResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/tasks", &tasks))
	require.Len(t, tasks.Tasks, 1)
	assert.Equal(t, "completed", tasks.Tasks[0].Status)

	var trend TrendResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/trend?period=week", &trend))
	require.Len(t, trend.Buckets, 1)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), trend.Buckets[0].PeriodStart.UTC())
	assert.Equal(t, toggled.Applied, trend.Buckets[0].Totals)
}

func TestTrendExplicitRangeIsZeroFilled(t *testing.T) {
	srv, _ := newTestServer(t)

	var trend TrendResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/trend?period=day&from=2026-03-01&to=2026-03-03", &trend))
	require.Len(t, trend.Buckets, 3)
	for _, b := range trend.Buckets {
		assert.True(t, b.Totals.IsZero())
	}
}

func TestErrorsMapToStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/tasks/99/toggle", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/trend?from=yesterday", nil))
}

func TestTrendRejectsOversizedAndZeroDates(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/trend?period=day&from=0002-01-01&to=9999-12-31", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/trend?period=day&from=0001-01-01&to=2026-03-03", nil))

	var trend TrendResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/trend?period=month&from=2000-01-01&to=2099-12-31", &trend))
	assert.Len(t, trend.Buckets, 1200)
}

func TestRulesAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	var rules RulesResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/rules", &rules))
	assert.Equal(t, engine.Vec(6, 0, 1, 4, 0), rules.Categories["fitness"])
	assert.Equal(t, engine.Vec(2, 0, 0, 3, 0), rules.Tags["strength"])

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), `route="/api/rules"`), "request counter missing:\n%s", body)
}
