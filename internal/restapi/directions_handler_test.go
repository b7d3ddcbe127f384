package restapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edge.bartcommute.org/internal/models"
)

func TestDirectionsEnrichesItinerary(t *testing.T) {
	api := newTestAPI(t, nil)
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/directions", `[{"startCode":"DUBL","endCode":"DALY"}]`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload, 1)

	var options []map[string]any
	require.NoError(t, json.Unmarshal(payload[0], &options))
	require.Len(t, options, 1)

	option := options[0]

	fares, present := option["fares"]
	assert.True(t, present, "fares key must exist")
	assert.Nil(t, fares, "fares are suppressed, never relayed")

	legs, ok := option["leg"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, legs)
	leg, ok := legs[0].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "DALY", leg["trainHeadAbbr"])
	path, ok := leg["path"].(string)
	require.True(t, ok, "legs between known stations carry an encoded path")
	assert.NotEmpty(t, path)
}

func TestDirectionsEmptyBatch(t *testing.T) {
	api := newTestAPI(t, nil)
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/directions", `[]`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestDirectionsInvalidBody(t *testing.T) {
	api := newTestAPI(t, nil)
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/directions", `{"startCode":"DUBL"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	assert.Equal(t, "invalid request body", model.Text)
}

func TestDirectionsPartialFailure(t *testing.T) {
	api := newTestAPI(t, upstreamHandlers{
		"/sched.aspx": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("orig") != "DUBL" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(schedFixture))
		},
	})
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/directions",
		`[{"startCode":"DUBL","endCode":"DALY"},{"startCode":"DALY","endCode":"DUBL"}]`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload, 2, "response stays parallel to the request")

	assert.NotEqual(t, "null", string(payload[0]))
	assert.Equal(t, "null", string(payload[1]), "failed trip occupies its slot as null")
}

func TestDirectionsCanonicalizesAirportSynonym(t *testing.T) {
	var origins []string
	api := newTestAPI(t, upstreamHandlers{
		"/sched.aspx": func(w http.ResponseWriter, r *http.Request) {
			origins = append(origins, r.URL.Query().Get("orig"))
			_, _ = w.Write([]byte(schedFixture))
		},
	})
	server := serveTestAPI(t, api)

	resp := postJSON(t, server.URL+"/directions", `[{"startCode":"SFIA","endCode":"DALY"}]`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, origins, 1)
	assert.Equal(t, "MLBR", origins[0], "the airport code maps to Millbrae upstream")
}
