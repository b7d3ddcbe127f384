package restapi

import (
	"encoding/json"
	"net/http"

	"edge.bartcommute.org/internal/analytics"
	"edge.bartcommute.org/internal/geo"
	"edge.bartcommute.org/internal/models"
)

// closestStationLimit bounds the response to the stations a rider can
// plausibly walk to.
const closestStationLimit = 2

// closestStationsHandler resolves the caller's coordinate to the nearest
// stations, annotates each with its closest entrance, and attaches live
// departure estimates. A station whose estimate fetch fails is returned
// with its error set rather than failing the batch.
func (api *RestAPI) closestStationsHandler(w http.ResponseWriter, r *http.Request) {
	var point models.Location
	if err := json.NewDecoder(r.Body).Decode(&point); err != nil {
		api.invalidRequestBodyResponse(w, r)
		return
	}

	api.Analytics.Record("/bart", analytics.ClientInfoFromRequest(r))

	stations, err := api.RefData.Stations(r.Context())
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}

	closest := geo.ClosestStations(stations, point, closestStationLimit)

	entranceIndex := geo.NewEntranceIndex(closest)
	for i := range closest {
		closest[i].NearestEntrance = entranceIndex.NearestForStation(point, closest[i].Abbr)
	}

	api.sendJSON(w, r, api.Departures.EnrichAll(r.Context(), closest))
}
