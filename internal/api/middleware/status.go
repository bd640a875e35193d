package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

// unmatchedRoute labels requests no chi route matched, so arbitrary 404 paths
// share one series.
const unmatchedRoute = "unmatched"

// routePattern returns the matched chi pattern, e.g. /v1/users/{userId}/alerts,
// or unmatchedRoute when nothing matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if len(rctx.RoutePatterns) > 0 {
			if pattern := rctx.RoutePattern(); pattern != "" {
				return pattern
			}
			// chi trims the trailing slash off the root pattern
			return "/"
		}
	}
	return unmatchedRoute
}
