// Package geo computes distances and ranks stations around a query point.
package geo

import (
	"math"
	"sort"

	"edge.bartcommute.org/internal/models"
)

// Distance is the Euclidean distance between two points in raw
// latitude/longitude degree space. Deliberately not geodesic: at regional
// scale the ranking it produces matches the geodesic one and it is far
// cheaper. Do not present the value as meters.
func Distance(a, b models.Location) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// ClosestStations returns the limit stations nearest to point, ascending
// by distance, each annotated with its distance. The sort is stable, so
// equidistant stations keep their upstream order. Returns min(limit, len)
// entries; an empty input yields an empty result.
func ClosestStations(stations []models.Station, point models.Location, limit int) []models.Station {
	ranked := make([]models.Station, len(stations))
	copy(ranked, stations)
	for i := range ranked {
		ranked[i].Distance = Distance(ranked[i].Coordinate(), point)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	if limit < 0 {
		limit = 0
	}
	return ranked[:limit]
}
