// Package metrics provides Prometheus metrics for the edge proxy.
package metrics

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Upstream BART API metrics
	UpstreamRequestsTotal *prometheus.CounterVec

	// Reference-data cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Analytics metrics
	AnalyticsEventsTotal *prometheus.CounterVec

	// Analytics database pool metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBWaitSecondsTotal prometheus.Counter

	// logger for error reporting
	logger *slog.Logger

	// collectorStarted prevents spawning multiple collector goroutines
	collectorStarted atomic.Bool

	// cancel stops the DB stats collector goroutine
	cancel context.CancelFunc

	// wg tracks the DB stats collector goroutine for graceful shutdown
	wg sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartproxy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bartproxy_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	upstreamRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartproxy_upstream_requests_total",
			Help: "Total number of upstream BART API calls",
		},
		[]string{"endpoint", "outcome"},
	)

	cacheHitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartproxy_refdata_cache_hits_total",
			Help: "Reference-data cache hits",
		},
		[]string{"key"},
	)

	cacheMissesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartproxy_refdata_cache_misses_total",
			Help: "Reference-data cache misses",
		},
		[]string{"key"},
	)

	analyticsEventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bartproxy_analytics_events_total",
			Help: "Usage analytics events recorded",
		},
		[]string{"endpoint", "method"},
	)

	dbConnectionsOpen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bartproxy_analytics_db_connections_open",
		Help: "Number of open analytics database connections",
	})

	dbConnectionsInUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bartproxy_analytics_db_connections_in_use",
		Help: "Number of analytics database connections currently in use",
	})

	dbWaitSecondsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bartproxy_analytics_db_wait_seconds_total",
		Help: "Total time blocked waiting for an analytics database connection",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		upstreamRequestsTotal,
		cacheHitsTotal,
		cacheMissesTotal,
		analyticsEventsTotal,
		dbConnectionsOpen,
		dbConnectionsInUse,
		dbWaitSecondsTotal,
	)

	return &Metrics{
		Registry:              registry,
		HTTPRequestsTotal:     httpRequestsTotal,
		HTTPRequestDuration:   httpRequestDuration,
		UpstreamRequestsTotal: upstreamRequestsTotal,
		CacheHitsTotal:        cacheHitsTotal,
		CacheMissesTotal:      cacheMissesTotal,
		AnalyticsEventsTotal:  analyticsEventsTotal,
		DBConnectionsOpen:     dbConnectionsOpen,
		DBConnectionsInUse:    dbConnectionsInUse,
		DBWaitSecondsTotal:    dbWaitSecondsTotal,
		logger:                logger,
	}
}

// StartDBStatsCollector starts a goroutine that periodically collects
// analytics database connection pool statistics.
// This method is idempotent; call Shutdown() to stop the collector.
func (m *Metrics) StartDBStatsCollector(db *sql.DB, interval time.Duration) {
	if db == nil {
		return
	}

	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	var lastWaitDuration time.Duration

	// Add to WaitGroup BEFORE exposing cancel to avoid race with Shutdown
	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if m.logger != nil {
					m.logger.Error("panic in DB stats collector", "error", r)
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
				m.DBConnectionsInUse.Set(float64(stats.InUse))

				waitDelta := stats.WaitDuration - lastWaitDuration
				if waitDelta > 0 {
					m.DBWaitSecondsTotal.Add(waitDelta.Seconds())
				}
				lastWaitDuration = stats.WaitDuration

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the DB stats collector goroutine and waits for it to exit.
// This method is safe to call multiple times.
func (m *Metrics) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
