package metrics

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllMetrics(t *testing.T) {
	m := New()
	require.NotNil(t, m.Registry)

	m.HTTPRequestsTotal.WithLabelValues("POST", "/bart", "200").Inc()
	m.UpstreamRequestsTotal.WithLabelValues("etd", "ok").Inc()
	m.CacheHitsTotal.WithLabelValues("stations").Inc()
	m.CacheMissesTotal.WithLabelValues("routes").Inc()
	m.AnalyticsEventsTotal.WithLabelValues("/bart", "fallback").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/bart", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("etd", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("stations")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("routes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalyticsEventsTotal.WithLabelValues("/bart", "fallback")))
}

func TestDBStatsCollectorLifecycle(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	m := New()
	m.StartDBStatsCollector(db, 10*time.Millisecond)
	// Second call must be a no-op.
	m.StartDBStatsCollector(db, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	m.Shutdown()
	// Shutdown twice is safe.
	m.Shutdown()
}

func TestDBStatsCollectorNilDB(t *testing.T) {
	m := New()
	m.StartDBStatsCollector(nil, time.Millisecond)
	m.Shutdown()
}
