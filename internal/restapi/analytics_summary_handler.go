package restapi

import (
	"net/http"
	"strconv"
)

// analyticsSummaryHandler serves the admin usage summary. The window
// defaults to a week; identification=explicit restricts the main series to
// explicitly identified traffic.
func (api *RestAPI) analyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if !api.RequestHasValidAdminToken(r) {
		api.sendUnauthorized(w, r)
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			api.sendError(w, r, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	summary, err := api.AnalyticsStore.Summarize(r.Context(), days, r.URL.Query().Get("identification"), api.Clock.Now())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, summary)
}
