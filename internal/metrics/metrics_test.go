package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEventCountsSaturation(t *testing.T) {
	m := New()
	m.RecordEvent("completed", []string{"power"})
	m.RecordEvent("completed", nil)
	m.RecordEvent("skipped", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScoringEvents.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScoringEvents.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SaturatedStats.WithLabelValues("power")))
}

func TestHandlerExposesTotals(t *testing.T) {
	m := New()
	m.SetTotal("stamina", 80)
	m.RecordRequest("/api/stats", "200")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `statline_stat_total{stat="stamina"} 80`)
	assert.Contains(t, string(body), `statline_http_requests_total{code="200",route="/api/stats"} 1`)
}
