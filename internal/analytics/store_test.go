package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edge.bartcommute.org/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func event(endpoint, userID, sessionID string, method models.IdentificationMethod, ts time.Time) models.AnalyticsEvent {
	return models.AnalyticsEvent{
		Endpoint:  endpoint,
		Timestamp: ts.Unix(),
		UserID:    userID,
		SessionID: sessionID,
		Method:    method,
	}
}

func TestAppendAndTotals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, event("/bart", "u1", "s1", models.IdentificationExplicit, now.Add(-time.Hour))))
	require.NoError(t, store.Append(ctx, event("/bart", "u1", "s1", models.IdentificationExplicit, now.Add(-30*time.Minute))))
	require.NoError(t, store.Append(ctx, event("/directions", "u2", "s2", models.IdentificationFallback, now.Add(-10*time.Minute))))

	summary, err := store.Summarize(ctx, 1, "fallback", now)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Totals.Requests)
	assert.Equal(t, 2, summary.Totals.UniqueUsers)
	assert.Equal(t, 2, summary.Totals.UniqueSessions)
}

func TestSummarizeExplicitOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, event("/bart", "u1", "s1", models.IdentificationExplicit, now.Add(-time.Hour))))
	require.NoError(t, store.Append(ctx, event("/bart", "u2", "s2", models.IdentificationFallback, now.Add(-time.Hour))))

	summary, err := store.Summarize(ctx, 1, "explicit", now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Totals.Requests)
	assert.Equal(t, 1, summary.Totals.UniqueUsers)
}

func TestSummarizePercentages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// Both events land in the same hourly bucket.
	at := now.Add(-30 * time.Minute)

	require.NoError(t, store.Append(ctx, event("/bart", "u1", "s1", models.IdentificationExplicit, at)))
	require.NoError(t, store.Append(ctx, event("/bart", "u2", "s2", models.IdentificationFallback, at)))

	summary, err := store.Summarize(ctx, 1, "fallback", now)
	require.NoError(t, err)

	require.Len(t, summary.ExplicitPercentage, 1)
	assert.InDelta(t, 50.0, summary.ExplicitPercentage[0], 0.01)
	assert.InDelta(t, 50.0, summary.ImplicitOnlyPercentage[0], 0.01)
}

func TestSummarizeWindowExcludesOldEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, event("/bart", "u1", "s1", models.IdentificationExplicit, now.Add(-48*time.Hour))))
	require.NoError(t, store.Append(ctx, event("/bart", "u2", "s2", models.IdentificationExplicit, now.Add(-time.Hour))))

	summary, err := store.Summarize(ctx, 1, "fallback", now)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Totals.Requests)
}

func TestSummarizeEmptyStore(t *testing.T) {
	store := newTestStore(t)

	summary, err := store.Summarize(context.Background(), 1, "fallback", time.Now())
	require.NoError(t, err)
	assert.Empty(t, summary.TimePeriods)
	assert.NotNil(t, summary.TimePeriods, "series serialize as [] not null")
	assert.Zero(t, summary.Totals.Requests)
}

func TestIntervalFor(t *testing.T) {
	assert.Equal(t, time.Hour, intervalFor(1))
	assert.Equal(t, time.Hour, intervalFor(7))
	assert.Equal(t, 24*time.Hour, intervalFor(30))
	assert.Equal(t, 7*24*time.Hour, intervalFor(365))
}

func TestAppendPersistsRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, event("/bart", "u1", "s1", models.IdentificationExplicit, time.Now())))

	var count int
	require.NoError(t, store.DB.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count))
	assert.Equal(t, 1, count)
}
