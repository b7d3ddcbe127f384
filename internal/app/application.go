package app

import (
	"fmt"
	"log/slog"
	"time"

	"edge.bartcommute.org/internal/analytics"
	"edge.bartcommute.org/internal/appconf"
	"edge.bartcommute.org/internal/bart"
	"edge.bartcommute.org/internal/clock"
	"edge.bartcommute.org/internal/departures"
	"edge.bartcommute.org/internal/directions"
	"edge.bartcommute.org/internal/metrics"
	"edge.bartcommute.org/internal/refdata"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config         appconf.Config
	Logger         *slog.Logger
	Clock          clock.Clock
	Metrics        *metrics.Metrics
	Bart           *bart.Client
	RefData        *refdata.Cache
	Departures     *departures.Enricher
	Directions     *directions.Enricher
	Analytics      *analytics.Recorder
	AnalyticsStore *analytics.Store
}

// NewApplication wires the full dependency graph from config. The caller
// owns Shutdown.
func NewApplication(cfg appconf.Config, logger *slog.Logger, clk clock.Clock) (*Application, error) {
	m := metrics.NewWithLogger(logger)

	client := bart.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.Timeout(), m)
	refData := refdata.NewCache(client, cfg.Cache.MaxSize, cfg.Cache.TTL(), m)

	store, err := analytics.NewStore(cfg.Analytics.DBPath)
	if err != nil {
		return nil, fmt.Errorf("analytics store: %w", err)
	}
	m.StartDBStatsCollector(store.DB, 15*time.Second)

	routes := refdata.RoutesWithFallback{Primary: refData, Fallback: refdata.FallbackRoutes()}

	return &Application{
		Config:         cfg,
		Logger:         logger,
		Clock:          clk,
		Metrics:        m,
		Bart:           client,
		RefData:        refData,
		Departures:     departures.NewEnricher(client),
		Directions:     directions.NewEnricher(client, routes, refData),
		Analytics:      analytics.NewRecorder(store, clk, logger, m),
		AnalyticsStore: store,
	}, nil
}

// Shutdown flushes pending analytics writes and releases resources.
func (app *Application) Shutdown() {
	if app.Analytics != nil {
		app.Analytics.Flush()
	}
	if app.Metrics != nil {
		app.Metrics.Shutdown()
	}
	if app.AnalyticsStore != nil {
		_ = app.AnalyticsStore.Close()
	}
}
