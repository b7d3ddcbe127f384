package restapi

import "net/http"

// stationNamesHandler returns the station code to display name map. The
// table changes on the order of years, so responses carry a long
// Cache-Control lifetime.
func (api *RestAPI) stationNamesHandler(w http.ResponseWriter, r *http.Request) {
	names, err := api.RefData.StationNames(r.Context())
	if err != nil {
		api.upstreamErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, names)
}
