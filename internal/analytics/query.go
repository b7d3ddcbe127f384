package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"edge.bartcommute.org/internal/models"
)

// Summary is the admin analytics payload: per-interval series plus totals.
type Summary struct {
	TimePeriods            []string      `json:"timePeriods"`
	UniqueSessions         []int         `json:"uniqueSessions"`
	UniqueUsers            []int         `json:"uniqueUsers"`
	Requests               []int         `json:"requests"`
	ExplicitPercentage     []float64     `json:"explicitPercentage"`
	ImplicitOnlyPercentage []float64     `json:"implicitOnlyPercentage"`
	Totals                 SummaryTotals `json:"totals"`
}

// SummaryTotals aggregates the whole window.
type SummaryTotals struct {
	UniqueSessions int `json:"uniqueSessions"`
	UniqueUsers    int `json:"uniqueUsers"`
	Requests       int `json:"requests"`
}

type seriesRow struct {
	period   int64
	sessions int
	users    int
	requests int
}

// intervalFor widens the bucket as the window grows, keeping series sizes
// manageable: hourly up to a week, daily up to a quarter, weekly beyond.
func intervalFor(days int) time.Duration {
	switch {
	case days > 90:
		return 7 * 24 * time.Hour
	case days > 7:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// Summarize computes the usage summary for the trailing window of the
// given number of days. identification "explicit" restricts the main
// series to explicitly identified traffic; anything else counts all
// traffic. Percentage series always compare explicit users to all users.
func (s *Store) Summarize(ctx context.Context, days int, identification string, now time.Time) (Summary, error) {
	if days <= 0 {
		days = 1
	}
	bucket := int64(intervalFor(days).Seconds())
	since := now.Add(-time.Duration(days) * 24 * time.Hour).Unix()

	explicitOnly := identification == "explicit"

	main, err := s.series(ctx, since, bucket, explicitOnly)
	if err != nil {
		return Summary{}, err
	}
	explicit, err := s.series(ctx, since, bucket, true)
	if err != nil {
		return Summary{}, err
	}
	all, err := s.series(ctx, since, bucket, false)
	if err != nil {
		return Summary{}, err
	}

	explicitUsers := make(map[int64]int, len(explicit))
	for _, row := range explicit {
		explicitUsers[row.period] = row.users
	}
	allUsers := make(map[int64]int, len(all))
	for _, row := range all {
		allUsers[row.period] = row.users
	}

	summary := Summary{
		TimePeriods:            []string{},
		UniqueSessions:         []int{},
		UniqueUsers:            []int{},
		Requests:               []int{},
		ExplicitPercentage:     []float64{},
		ImplicitOnlyPercentage: []float64{},
	}
	for _, row := range main {
		summary.TimePeriods = append(summary.TimePeriods, time.Unix(row.period, 0).UTC().Format(time.RFC3339))
		summary.UniqueSessions = append(summary.UniqueSessions, row.sessions)
		summary.UniqueUsers = append(summary.UniqueUsers, row.users)
		summary.Requests = append(summary.Requests, row.requests)

		explicitPct := 0.0
		if total := allUsers[row.period]; total > 0 {
			explicitPct = float64(explicitUsers[row.period]) / float64(total) * 100
		}
		explicitPct = math.Round(explicitPct*100) / 100
		summary.ExplicitPercentage = append(summary.ExplicitPercentage, explicitPct)
		summary.ImplicitOnlyPercentage = append(summary.ImplicitOnlyPercentage, math.Round((100-explicitPct)*100)/100)
	}

	totals, err := s.totals(ctx, since, explicitOnly)
	if err != nil {
		return Summary{}, err
	}
	summary.Totals = totals

	return summary, nil
}

func (s *Store) series(ctx context.Context, since, bucket int64, explicitOnly bool) ([]seriesRow, error) {
	query := `
		SELECT (timestamp / ?) * ? AS period,
		       COUNT(DISTINCT session_id),
		       COUNT(DISTINCT user_id),
		       COUNT(*)
		FROM events
		WHERE timestamp > ?`
	args := []any{bucket, bucket, since}
	if explicitOnly {
		query += ` AND method = ?`
		args = append(args, string(models.IdentificationExplicit))
	}
	query += ` GROUP BY period ORDER BY period ASC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics series query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []seriesRow
	for rows.Next() {
		var row seriesRow
		if err := rows.Scan(&row.period, &row.sessions, &row.users, &row.requests); err != nil {
			return nil, fmt.Errorf("analytics series scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) totals(ctx context.Context, since int64, explicitOnly bool) (SummaryTotals, error) {
	query := `
		SELECT COUNT(DISTINCT session_id),
		       COUNT(DISTINCT user_id),
		       COUNT(*)
		FROM events
		WHERE timestamp > ?`
	args := []any{since}
	if explicitOnly {
		query += ` AND method = ?`
		args = append(args, string(models.IdentificationExplicit))
	}

	var totals SummaryTotals
	err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&totals.UniqueSessions, &totals.UniqueUsers, &totals.Requests)
	if err != nil {
		return SummaryTotals{}, fmt.Errorf("analytics totals query: %w", err)
	}
	return totals, nil
}
