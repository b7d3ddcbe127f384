// Package restapi is the JSON HTTP facade: request decoding, handler
// orchestration, the shared error envelope, and the middleware chain.
package restapi

import (
	"errors"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edge.bartcommute.org/internal/app"
	"edge.bartcommute.org/internal/bart"
)

const stationsCacheSeconds = 24 * 60 * 60

type RestAPI struct {
	*app.Application
}

func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{Application: app}
}

// SetRoutes registers all endpoints on mux. Unmatched paths get the plain
// "404" body some existing clients sniff for, not the JSON envelope.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /bart", api.closestStationsHandler)
	mux.HandleFunc("POST /directions", api.directionsHandler)
	mux.Handle("GET /stations", CacheControlMiddleware(stationsCacheSeconds, http.HandlerFunc(api.stationNamesHandler)))
	mux.HandleFunc("GET /health", api.healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /admin/api/analytics", api.analyticsSummaryHandler)
	mux.HandleFunc("/", api.notFoundHandler)
}

// Handler wraps the routed mux in the full middleware chain.
func (api *RestAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	var handler http.Handler = gzhttp.GzipHandler(mux)
	handler = MetricsHandler(api.Metrics)(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = RequestIDMiddleware(handler)

	return handler
}

func (api *RestAPI) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("404"))
}

// upstreamErrorResponse maps an upstream client failure onto the error
// envelope: timeouts become 504, everything else from the upstream becomes
// 502.
func (api *RestAPI) upstreamErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, bart.ErrUpstreamTimeout) {
		api.sendError(w, r, http.StatusGatewayTimeout, "upstream timeout")
		return
	}
	if errors.Is(err, bart.ErrUpstreamStatus) || errors.Is(err, bart.ErrMalformedResponse) {
		api.sendError(w, r, http.StatusBadGateway, "upstream error")
		return
	}
	api.serverErrorResponse(w, r, err)
}
