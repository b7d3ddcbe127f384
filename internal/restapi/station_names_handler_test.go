package restapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edge.bartcommute.org/internal/models"
)

func TestStationNamesMap(t *testing.T) {
	api := newTestAPI(t, nil)
	server := serveTestAPI(t, api)

	resp, err := http.Get(server.URL + "/stations")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json;charset=UTF-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400", resp.Header.Get("Cache-Control"))

	var names map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Equal(t, "12th St. Oakland City Center", names["12TH"])
	assert.Equal(t, "Daly City", names["DALY"])
	assert.Len(t, names, 4)
}

func TestStationNamesUpstreamFailureNotCacheable(t *testing.T) {
	api := newTestAPI(t, upstreamHandlers{
		"/stn.aspx": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	})
	server := serveTestAPI(t, api)

	resp, err := http.Get(server.URL + "/stations")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	assert.Equal(t, "upstream error", model.Text)
}
