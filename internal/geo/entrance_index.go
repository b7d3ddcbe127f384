package geo

import (
	"github.com/tidwall/rtree"

	"edge.bartcommute.org/internal/models"
)

type entranceRef struct {
	stationAbbr string
	location    models.Location
}

// EntranceIndex is a spatial index over every station entrance coordinate.
// Build one per station snapshot; it is read-only after construction.
type EntranceIndex struct {
	tree rtree.RTreeG[entranceRef]
}

// NewEntranceIndex indexes the entrance coordinates of the given stations.
// Stations without entrance data contribute nothing.
func NewEntranceIndex(stations []models.Station) *EntranceIndex {
	idx := &EntranceIndex{}
	for _, s := range stations {
		for _, e := range s.Entrances {
			p := [2]float64{e.Lng, e.Lat}
			idx.tree.Insert(p, p, entranceRef{stationAbbr: s.Abbr, location: e})
		}
	}
	return idx
}

// NearestForStation returns the station's entrance closest to point, or
// nil when the station has no indexed entrances. Candidates come back from
// the tree in increasing distance order, so the first hit for the station
// is the answer.
func (idx *EntranceIndex) NearestForStation(point models.Location, stationAbbr string) *models.Location {
	target := [2]float64{point.Lng, point.Lat}

	var found *models.Location
	idx.tree.Nearby(
		rtree.BoxDist[float64, entranceRef](target, target, nil),
		func(min, max [2]float64, ref entranceRef, dist float64) bool {
			if ref.stationAbbr != stationAbbr {
				return true
			}
			loc := ref.location
			found = &loc
			return false
		},
	)
	return found
}
