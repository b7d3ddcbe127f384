// Package analytics records per-request usage events. Identity is either
// caller-supplied or derived from connection metadata; emission is
// fire-and-forget and never affects user-facing latency.
package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"edge.bartcommute.org/internal/clock"
	"edge.bartcommute.org/internal/logging"
	"edge.bartcommute.org/internal/metrics"
	"edge.bartcommute.org/internal/models"
)

// appendTimeout bounds a single sink append so a stuck sink cannot pin
// goroutines forever.
const appendTimeout = 5 * time.Second

// EventSink receives analytics events. Implementations must be safe for
// concurrent use.
type EventSink interface {
	Append(ctx context.Context, event models.AnalyticsEvent) error
}

// Recorder resolves identities and emits events to the sink.
type Recorder struct {
	sink    EventSink
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

// NewRecorder builds a recorder. Metrics may be nil.
func NewRecorder(sink EventSink, clk clock.Clock, logger *slog.Logger, m *metrics.Metrics) *Recorder {
	return &Recorder{sink: sink, clock: clk, logger: logger, metrics: m}
}

// Record emits one usage event for the endpoint, asynchronously. Sink
// failures are logged and swallowed; the caller's response path is never
// blocked or failed by analytics.
func (r *Recorder) Record(endpoint string, info ClientInfo) {
	now := r.clock.Now()
	identity := ResolveIdentity(info, now)

	event := models.AnalyticsEvent{
		Endpoint:  endpoint,
		Timestamp: now.Unix(),
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
		Method:    identity.Method,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		defer cancel()

		if err := r.sink.Append(ctx, event); err != nil {
			logging.LogError(r.logger, "analytics append failed", err,
				slog.String("endpoint", endpoint))
			return
		}
		if r.metrics != nil {
			r.metrics.AnalyticsEventsTotal.WithLabelValues(endpoint, string(event.Method)).Inc()
		}
	}()
}

// Flush waits for all in-flight emissions. Tests and shutdown only.
func (r *Recorder) Flush() {
	r.wg.Wait()
}
