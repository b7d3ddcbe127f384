package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheControlHeaders(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	failHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	tests := []struct {
		name            string
		durationSeconds int
		handler         http.Handler
		expectedHeader  string
	}{
		{
			name:            "Static Data (Long Cache)",
			durationSeconds: 86400,
			handler:         okHandler,
			expectedHeader:  "public, max-age=86400",
		},
		{
			name:            "Zero Duration (No Cache)",
			durationSeconds: 0,
			handler:         okHandler,
			expectedHeader:  "no-cache, no-store, must-revalidate",
		},
		{
			name:            "Error Response (No Cache despite duration)",
			durationSeconds: 86400,
			handler:         failHandler,
			expectedHeader:  "no-cache, no-store, must-revalidate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := CacheControlMiddleware(tt.durationSeconds, tt.handler)

			req := httptest.NewRequest("GET", "/stations", nil)
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedHeader, rec.Header().Get("Cache-Control"))
		})
	}
}

func TestCacheControlImplicitOK(t *testing.T) {
	// Handlers that never call WriteHeader still get the cache header on
	// first Write.
	wrapped := CacheControlMiddleware(60, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("body"))
		require.NoError(t, err)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
}
