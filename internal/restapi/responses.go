package restapi

import (
	"encoding/json"
	"net/http"

	"edge.bartcommute.org/internal/logging"
	"edge.bartcommute.org/internal/models"
)

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
}

// sendJSON writes payload with a 200 status. Encoding failures after the
// header is written cannot be recovered, only logged.
func (api *RestAPI) sendJSON(w http.ResponseWriter, r *http.Request, payload any) {
	setJSONResponseType(w)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.LogError(api.Logger, "failed to encode response", err)
	}
}

func (api *RestAPI) sendError(w http.ResponseWriter, r *http.Request, code int, message string) {
	setJSONResponseType(w)
	w.WriteHeader(code)

	response := models.NewErrorResponse(code, message, api.Clock.Now())
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode error response", err)
	}
}

func (api *RestAPI) sendUnauthorized(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "internal server error", err)
	api.sendError(w, r, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) invalidRequestBodyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusBadRequest, "invalid request body")
}
