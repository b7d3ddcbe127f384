package restapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edge.bartcommute.org/internal/models"
)

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestClosestStationsAtStationCoordinate(t *testing.T) {
	api := newTestAPI(t, nil)
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/bart", `{"lat":37.803768,"lng":-122.271450}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json;charset=UTF-8", resp.Header.Get("Content-Type"))

	var stations []models.Station
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stations))
	require.Len(t, stations, 2, "payload: %s", spew.Sdump(stations))

	first := stations[0]
	assert.Equal(t, "12TH", first.Abbr)
	assert.Zero(t, first.Distance)
	require.NotEmpty(t, first.Lines)
	assert.Equal(t, "DALY", first.Lines[0].Abbreviation)
	require.NotEmpty(t, first.Lines[0].Estimates)
	assert.Equal(t, 0, first.Lines[0].Estimates[0].Minutes, "imminent departures normalize to zero")
	assert.Equal(t, 9, first.Lines[0].Estimates[1].Minutes)

	require.NotNil(t, first.NearestEntrance)
	assert.Empty(t, first.Error)

	assert.Equal(t, "19TH", stations[1].Abbr)
	assert.Greater(t, stations[1].Distance, 0.0)
}

func TestClosestStationsInvalidBody(t *testing.T) {
	api := newTestAPI(t, nil)
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/bart", `{"lat": not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	assert.Equal(t, http.StatusBadRequest, model.Code)
	assert.Equal(t, "invalid request body", model.Text)
	assert.Equal(t, 2, model.Version)
	assert.Greater(t, model.CurrentTime, int64(0))
}

func TestClosestStationsUpstreamFailure(t *testing.T) {
	api := newTestAPI(t, upstreamHandlers{
		"/stn.aspx": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/bart", `{"lat":37.8,"lng":-122.27}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	assert.Equal(t, "upstream error", model.Text)
}

func TestClosestStationsPerStationIsolation(t *testing.T) {
	api := newTestAPI(t, upstreamHandlers{
		"/etd.aspx": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("orig") == "19TH" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(etdFixture))
		},
	})
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/bart", `{"lat":37.803768,"lng":-122.271450}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stations []models.Station
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stations))
	require.Len(t, stations, 2)

	assert.NotEmpty(t, stations[0].Lines, "healthy station keeps its departures")
	assert.Empty(t, stations[0].Error)
	assert.Empty(t, stations[1].Lines)
	assert.NotEmpty(t, stations[1].Error, "failing station reports its error in place")
}

func TestClosestStationsRecordsAnalytics(t *testing.T) {
	api := newTestAPI(t, nil)
	server := serveTestAPI(t, api)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/bart", bytes.NewBufferString(`{"lat":37.8,"lng":-122.27}`))
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("X-Session-ID", "session-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	api.Analytics.Flush()

	var userID string
	var method string
	err = api.AnalyticsStore.DB.QueryRow(
		`SELECT user_id, method FROM events WHERE endpoint = '/bart'`).Scan(&userID, &method)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, string(models.IdentificationExplicit), method)
}
