// Package departures enriches stations with real-time departure listings
// from the upstream estimate endpoint.
package departures

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"edge.bartcommute.org/internal/bart"
	"edge.bartcommute.org/internal/models"
)

// EstimateSource is the subset of the upstream client the enricher needs.
type EstimateSource interface {
	Estimates(ctx context.Context, stationAbbr string) ([]bart.RawETD, error)
}

// Enricher attaches Lines to stations.
type Enricher struct {
	source EstimateSource
}

// NewEnricher builds an enricher over the given estimate source.
func NewEnricher(source EstimateSource) *Enricher {
	return &Enricher{source: source}
}

// Enrich fetches the station's real-time estimates and returns a copy of
// the station with Lines attached.
func (e *Enricher) Enrich(ctx context.Context, station models.Station) (models.Station, error) {
	etds, err := e.source.Estimates(ctx, station.Abbr)
	if err != nil {
		return models.Station{}, err
	}

	lines := make([]models.Line, 0, len(etds))
	for _, etd := range etds {
		line := models.Line{
			Abbreviation: etd.Abbreviation,
			Destination:  etd.Destination,
			Estimates:    make([]models.Estimate, 0, len(etd.Estimate)),
		}
		for _, raw := range etd.Estimate {
			minutes, err := normalizeMinutes(raw.Minutes)
			if err != nil {
				return models.Station{}, fmt.Errorf("station %s: %w", station.Abbr, err)
			}
			line.Estimates = append(line.Estimates, models.Estimate{
				Direction: raw.Direction,
				HexColor:  raw.HexColor,
				Length:    raw.Length,
				Minutes:   minutes,
				Platform:  raw.Platform,
			})
		}
		lines = append(lines, line)
	}

	station.Lines = lines
	return station, nil
}

// EnrichAll enriches every station concurrently and reassembles results in
// input order. Failures are isolated per station: a failing station keeps
// its reference fields and carries the failure in its Error field, so one
// bad upstream call no longer sinks the whole batch.
func (e *Enricher) EnrichAll(ctx context.Context, stations []models.Station) []models.Station {
	results := make([]models.Station, len(stations))

	var wg sync.WaitGroup
	for i, station := range stations {
		wg.Add(1)
		go func(i int, station models.Station) {
			defer wg.Done()
			enriched, err := e.Enrich(ctx, station)
			if err != nil {
				station.Error = err.Error()
				results[i] = station
				return
			}
			results[i] = enriched
		}(i, station)
	}
	wg.Wait()

	return results
}

// normalizeMinutes maps the upstream minutes field to a non-negative
// integer. The literal "Leaving" means the train is departing now; any
// other value must parse as base-10, never silently coerced.
func normalizeMinutes(raw string) (int, error) {
	if raw == "Leaving" {
		return 0, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: estimate minutes %q", bart.ErrMalformedResponse, raw)
	}
	return minutes, nil
}
