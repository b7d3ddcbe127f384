// test_helper.go contains the shared harness for endpoint tests: a fake
// upstream transit API and a fully wired RestAPI pointed at it.
package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"edge.bartcommute.org/internal/analytics"
	"edge.bartcommute.org/internal/app"
	"edge.bartcommute.org/internal/appconf"
	"edge.bartcommute.org/internal/bart"
	"edge.bartcommute.org/internal/clock"
	"edge.bartcommute.org/internal/departures"
	"edge.bartcommute.org/internal/directions"
	"edge.bartcommute.org/internal/logging"
	"edge.bartcommute.org/internal/metrics"
	"edge.bartcommute.org/internal/refdata"
)

const stationsFixture = `{"root":{"stations":{"station":[
	{"name":"12th St. Oakland City Center","abbr":"12TH","gtfs_latitude":"37.803768","gtfs_longitude":"-122.271450","address":"1245 Broadway","city":"Oakland","county":"alameda","state":"CA","zipcode":"94612"},
	{"name":"19th St. Oakland","abbr":"19TH","gtfs_latitude":"37.808350","gtfs_longitude":"-122.268602","address":"1900 Broadway","city":"Oakland","county":"alameda","state":"CA","zipcode":"94612"},
	{"name":"Daly City","abbr":"DALY","gtfs_latitude":"37.706121","gtfs_longitude":"-122.469081","address":"500 John Daly Blvd.","city":"Daly City","county":"sanmateo","state":"CA","zipcode":"94014"},
	{"name":"Dublin/Pleasanton","abbr":"DUBL","gtfs_latitude":"37.701687","gtfs_longitude":"-121.899179","address":"5801 Owens Dr.","city":"Pleasanton","county":"alameda","state":"CA","zipcode":"94588"}
]}}}`

const routesFixture = `{"root":{"routes":{"route":[
	{"name":"Dublin/Pleasanton to Daly City","abbr":"DUBL-DALY","routeID":"ROUTE 11","number":"11","hexcolor":"#0099CC","color":"BLUE"},
	{"name":"Daly City to Dublin/Pleasanton","abbr":"DALY-DUBL","routeID":"ROUTE 12","number":"12","hexcolor":"#0099CC","color":"BLUE"}
]}}}`

const etdFixture = `{"root":{"station":[{"etd":[
	{"destination":"Daly City","abbreviation":"DALY","estimate":[
		{"minutes":"Leaving","platform":"3","direction":"South","length":"10","color":"BLUE","hexcolor":"#0099CC"},
		{"minutes":"9","platform":"3","direction":"South","length":"10","color":"BLUE","hexcolor":"#0099CC"}
	]}
]}]}}`

const schedFixture = `{"root":{"schedule":{"request":{"trip":[
	{"@origin":"DUBL","@destination":"DALY","@origTimeMin":"1:00 PM","@destTimeMin":"1:53 PM","fares":{"fare":[{"@amount":"7.40"}]},
	 "leg":[{"@order":"1","@origin":"DUBL","@destination":"DALY","@line":"ROUTE 11","@trainHeadStation":"Daly City"}]}
]}}}}`

// upstreamHandlers maps upstream endpoint paths to canned handlers.
// Entries override the fixture defaults, so tests can inject failures per
// endpoint.
type upstreamHandlers map[string]http.HandlerFunc

func newFakeUpstream(t *testing.T, overrides upstreamHandlers) *httptest.Server {
	t.Helper()

	fixtures := map[string]string{
		"/stn.aspx":   stationsFixture,
		"/route.aspx": routesFixture,
		"/etd.aspx":   etdFixture,
		"/sched.aspx": schedFixture,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := overrides[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		body, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestAPI wires a complete RestAPI against the fake upstream, with an
// in-memory analytics store and a fixed clock.
func newTestAPI(t *testing.T, overrides upstreamHandlers) *RestAPI {
	t.Helper()
	return newTestAPIWithTimeout(t, overrides, 10*time.Second)
}

func newTestAPIWithTimeout(t *testing.T, overrides upstreamHandlers, timeout time.Duration) *RestAPI {
	t.Helper()

	upstream := newFakeUpstream(t, overrides)

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Upstream.BaseURL = upstream.URL
	cfg.Analytics.DBPath = ":memory:"
	cfg.Analytics.AdminToken = "test-admin-token"

	logger := logging.NewLogger("test", false)
	m := metrics.New()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	client := bart.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, timeout, m)
	refData := refdata.NewCache(client, cfg.Cache.MaxSize, cfg.Cache.TTL(), m)

	store, err := analytics.NewStore(cfg.Analytics.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	routes := refdata.RoutesWithFallback{Primary: refData, Fallback: refdata.FallbackRoutes()}

	return NewRestAPI(&app.Application{
		Config:         cfg,
		Logger:         logger,
		Clock:          clk,
		Metrics:        m,
		Bart:           client,
		RefData:        refData,
		Departures:     departures.NewEnricher(client),
		Directions:     directions.NewEnricher(client, routes, refData),
		Analytics:      analytics.NewRecorder(store, clk, logger, m),
		AnalyticsStore: store,
	})
}

// serveTestAPI starts an httptest server running the full middleware chain.
func serveTestAPI(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return server
}
