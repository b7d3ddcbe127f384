package app

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequestHasValidAdminToken checks the bearer token on admin endpoints.
// No configured token means the admin surface is disabled entirely.
func (app *Application) RequestHasValidAdminToken(r *http.Request) bool {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return app.IsValidAdminToken(token)
}

func (app *Application) IsValidAdminToken(token string) bool {
	expected := app.Config.Analytics.AdminToken
	if expected == "" || token == "" {
		return false
	}

	// Constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
}
