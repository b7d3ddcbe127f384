package restapi

import (
	"fmt"
	"net/http"
)

// CacheControlMiddleware marks successful responses as cacheable for the
// given lifetime. Error responses always go out uncacheable so a transient
// upstream failure is not pinned in an intermediary cache.
func CacheControlMiddleware(durationSeconds int, next http.Handler) http.Handler {
	headerValue := "no-cache, no-store, must-revalidate"
	if durationSeconds > 0 {
		headerValue = fmt.Sprintf("public, max-age=%d", durationSeconds)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cacheControlWriter{
			ResponseWriter: w,
			headerValue:    headerValue,
		}, r)
	})
}

type cacheControlWriter struct {
	http.ResponseWriter
	headerValue   string
	headerWritten bool
}

func (w *cacheControlWriter) WriteHeader(code int) {
	if !w.headerWritten {
		w.headerWritten = true
		value := w.headerValue
		if code < 200 || code >= 300 {
			value = "no-cache, no-store, must-revalidate"
		}
		w.ResponseWriter.Header().Set("Cache-Control", value)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheControlWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
