// Package refdata is the cache-backed reference data layer. Station and
// route snapshots are fetched wholesale from the upstream API, transformed
// into internal shape, and held serialized in a TTL key-value store.
// Snapshots are never partially updated: cache expiry triggers a full
// refetch on the next read.
package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"edge.bartcommute.org/internal/bart"
	"edge.bartcommute.org/internal/metrics"
	"edge.bartcommute.org/internal/models"
)

const (
	stationsCacheKey = "stations"
	routesCacheKey   = "routes"
)

// StationSource provides the station table.
type StationSource interface {
	Stations(ctx context.Context) ([]models.Station, error)
}

// RouteSource provides the route table.
type RouteSource interface {
	Routes(ctx context.Context) ([]models.Route, error)
}

// Fetcher is the subset of the upstream client the cache needs.
type Fetcher interface {
	Stations(ctx context.Context) ([]bart.RawStation, error)
	Routes(ctx context.Context) ([]bart.RawRoute, error)
}

// Cache serves station and route snapshots out of a TTL key-value store,
// fetching from upstream on miss. Concurrent callers may both miss and
// both write; last write wins, which is harmless because the content is
// identical.
type Cache struct {
	fetcher Fetcher
	store   gcache.Cache
	metrics *metrics.Metrics
}

// NewCache builds a cache over the given upstream fetcher. Entries expire
// ttl after being stored. Metrics may be nil.
func NewCache(fetcher Fetcher, size int, ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{
		fetcher: fetcher,
		store:   gcache.New(size).LRU().Expiration(ttl).Build(),
		metrics: m,
	}
}

// Stations returns the station snapshot, fetching and storing it on miss.
func (c *Cache) Stations(ctx context.Context) ([]models.Station, error) {
	if cached, err := c.store.Get(stationsCacheKey); err == nil {
		var stations []models.Station
		if err := json.Unmarshal(cached.([]byte), &stations); err == nil {
			c.countHit(stationsCacheKey)
			return stations, nil
		}
	}
	c.countMiss(stationsCacheKey)

	raw, err := c.fetcher.Stations(ctx)
	if err != nil {
		return nil, err
	}

	stations := make([]models.Station, 0, len(raw))
	for _, r := range raw {
		station, err := stationFromRaw(r)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	c.put(stationsCacheKey, stations)
	return stations, nil
}

// Routes returns the route snapshot, fetching and storing it on miss.
func (c *Cache) Routes(ctx context.Context) ([]models.Route, error) {
	if cached, err := c.store.Get(routesCacheKey); err == nil {
		var routes []models.Route
		if err := json.Unmarshal(cached.([]byte), &routes); err == nil {
			c.countHit(routesCacheKey)
			return routes, nil
		}
	}
	c.countMiss(routesCacheKey)

	raw, err := c.fetcher.Routes(ctx)
	if err != nil {
		return nil, err
	}

	routes := make([]models.Route, 0, len(raw))
	for _, r := range raw {
		routes = append(routes, routeFromRaw(r))
	}

	c.put(routesCacheKey, routes)
	return routes, nil
}

// StationNames returns the station code to display name mapping served on
// GET /stations.
func (c *Cache) StationNames(ctx context.Context) (map[string]string, error) {
	stations, err := c.Stations(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(stations))
	for _, s := range stations {
		names[s.Abbr] = s.Name
	}
	return names, nil
}

func (c *Cache) put(key string, value any) {
	serialized, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.store.Set(key, serialized)
}

func (c *Cache) countHit(key string) {
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.WithLabelValues(key).Inc()
	}
}

func (c *Cache) countMiss(key string) {
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.WithLabelValues(key).Inc()
	}
}

func stationFromRaw(r bart.RawStation) (models.Station, error) {
	lat, err := strconv.ParseFloat(r.Latitude, 64)
	if err != nil {
		return models.Station{}, fmt.Errorf("%w: station %s latitude %q", bart.ErrMalformedResponse, r.Abbr, r.Latitude)
	}
	lng, err := strconv.ParseFloat(r.Longitude, 64)
	if err != nil {
		return models.Station{}, fmt.Errorf("%w: station %s longitude %q", bart.ErrMalformedResponse, r.Abbr, r.Longitude)
	}

	return models.Station{
		Abbr:      r.Abbr,
		Name:      r.Name,
		Address:   r.Address,
		City:      r.City,
		County:    r.County,
		State:     r.State,
		ZipCode:   r.ZipCode,
		Latitude:  lat,
		Longitude: lng,
		Entrances: entrances[r.Abbr],
	}, nil
}

func routeFromRaw(r bart.RawRoute) models.Route {
	origin, head, _ := strings.Cut(r.Abbr, "-")

	// Lexicographic heuristic, not a geographic fact.
	direction := "South"
	if origin < head {
		direction = "North"
	}

	return models.Route{
		Name:            r.Name,
		Abbr:            r.Abbr,
		TrainOriginAbbr: origin,
		TrainHeadAbbr:   head,
		RouteID:         r.RouteID,
		Number:          r.Number,
		HexColor:        r.HexColor,
		Color:           r.Color,
		Direction:       direction,
	}
}
