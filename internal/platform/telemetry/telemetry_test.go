package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, p.Shutdown(context.Background()))
	assert.NotNil(t, Tracer())
}

func TestSyncMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSyncMetrics(reg)

	m.CycleStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inProgress))

	m.CycleFinished("success", 2, 1, true, 150*time.Millisecond)
	m.CycleFinished("no_conflict", 0, 0, false, 10*time.Millisecond)
	m.CycleSkipped()
	m.SetQuoteCount(7)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.inProgress))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.changes.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pushFailures))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.quotes))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP quotesync_sync_changes_total Merge change log entries by kind.
# TYPE quotesync_sync_changes_total counter
quotesync_sync_changes_total{kind="added"} 2
quotesync_sync_changes_total{kind="updated"} 1
`), "quotesync_sync_changes_total")
	assert.NoError(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(Middleware("quotesync-test")...)
	engine.GET("/api/v1/quotes", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
