// Package directions resolves trip itineraries from the upstream schedule
// endpoint and annotates each leg with rider-facing labels.
package directions

import (
	"context"
	"fmt"
	"sync"

	"github.com/twpayne/go-polyline"

	"edge.bartcommute.org/internal/bart"
	"edge.bartcommute.org/internal/models"
	"edge.bartcommute.org/internal/refdata"
)

// ScheduleSource is the subset of the upstream client the enricher needs.
type ScheduleSource interface {
	Schedule(ctx context.Context, origin, destination string) ([]map[string]any, error)
}

// Enricher resolves itineraries. Route and station tables come through the
// reference-data layer, so concurrent trips share one cached snapshot.
type Enricher struct {
	schedule ScheduleSource
	routes   refdata.RouteSource
	stations refdata.StationSource
}

// NewEnricher builds an enricher. stations may be nil, which disables leg
// path encoding.
func NewEnricher(schedule ScheduleSource, routes refdata.RouteSource, stations refdata.StationSource) *Enricher {
	return &Enricher{schedule: schedule, routes: routes, stations: stations}
}

// EnrichTrip fetches the scheduled itineraries for one origin/destination
// pair. Fares are suppressed, never relayed. Each leg gets a trainHeadAbbr
// resolved by matching its line against the route table (absent on no
// match, not an error) and, when both endpoint stations are known, an
// encoded polyline path.
func (e *Enricher) EnrichTrip(ctx context.Context, trip models.TripRequest) ([]models.ItineraryOption, error) {
	origin := refdata.CanonicalAbbr(trip.StartCode)
	destination := refdata.CanonicalAbbr(trip.EndCode)

	rawTrips, err := e.schedule.Schedule(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	routes, err := e.routes.Routes(ctx)
	if err != nil {
		return nil, err
	}
	headByLine := make(map[string]string, len(routes))
	for _, r := range routes {
		headByLine[r.RouteID] = r.TrainHeadAbbr
	}

	coords := e.stationCoords(ctx)

	options := make([]models.ItineraryOption, 0, len(rawTrips))
	for _, raw := range rawTrips {
		if raw == nil {
			return nil, fmt.Errorf("%w: sched %s-%s: nil trip entry", bart.ErrMalformedResponse, origin, destination)
		}
		opt := models.ItineraryOption(raw)
		opt["fares"] = nil
		for _, leg := range opt.Legs() {
			line, _ := leg["line"].(string)
			if head, ok := headByLine[line]; ok {
				leg["trainHeadAbbr"] = head
			}
			if path, ok := legPath(leg, coords); ok {
				leg["path"] = path
			}
		}
		options = append(options, opt)
	}
	return options, nil
}

// EnrichAll resolves every trip concurrently, preserving input order.
// Failures are isolated per trip.
func (e *Enricher) EnrichAll(ctx context.Context, trips []models.TripRequest) []models.TripResult {
	results := make([]models.TripResult, len(trips))

	var wg sync.WaitGroup
	for i, trip := range trips {
		wg.Add(1)
		go func(i int, trip models.TripRequest) {
			defer wg.Done()
			options, err := e.EnrichTrip(ctx, trip)
			if err != nil {
				results[i] = models.TripResult{Trip: trip, Error: err.Error()}
				return
			}
			results[i] = models.TripResult{Trip: trip, Options: options}
		}(i, trip)
	}
	wg.Wait()

	return results
}

// stationCoords returns the station coordinate lookup, or nil when the
// station table is unavailable. Path encoding is an annotation, not part
// of the itinerary contract, so a failed station fetch only disables it.
func (e *Enricher) stationCoords(ctx context.Context) map[string]models.Location {
	if e.stations == nil {
		return nil
	}
	stations, err := e.stations.Stations(ctx)
	if err != nil {
		return nil
	}
	coords := make(map[string]models.Location, len(stations))
	for _, s := range stations {
		coords[s.Abbr] = s.Coordinate()
	}
	return coords
}

// legPath encodes the leg's origin and destination station coordinates as
// a Google polyline for map rendering.
func legPath(leg map[string]any, coords map[string]models.Location) (string, bool) {
	if coords == nil {
		return "", false
	}
	origin, _ := leg["origin"].(string)
	destination, _ := leg["destination"].(string)

	from, okFrom := coords[origin]
	to, okTo := coords[destination]
	if !okFrom || !okTo {
		return "", false
	}

	encoded := polyline.EncodeCoords([][]float64{
		{from.Lat, from.Lng},
		{to.Lat, to.Lng},
	})
	return string(encoded), true
}
