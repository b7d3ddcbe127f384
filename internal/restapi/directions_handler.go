package restapi

import (
	"encoding/json"
	"net/http"

	"edge.bartcommute.org/internal/analytics"
	"edge.bartcommute.org/internal/models"
)

// directionsHandler resolves a batch of origin/destination pairs into
// itinerary options. The response array is parallel to the request array;
// a trip that could not be resolved occupies its slot as null so callers
// can correlate by index.
func (api *RestAPI) directionsHandler(w http.ResponseWriter, r *http.Request) {
	var trips []models.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&trips); err != nil {
		api.invalidRequestBodyResponse(w, r)
		return
	}

	api.Analytics.Record("/directions", analytics.ClientInfoFromRequest(r))

	results := api.Directions.EnrichAll(r.Context(), trips)

	payload := make([][]models.ItineraryOption, len(results))
	for i, result := range results {
		if result.Error != "" {
			continue
		}
		payload[i] = result.Options
	}

	api.sendJSON(w, r, payload)
}
