package middleware

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/dashboard/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Metrics counts requests by chi route pattern and status code. Using the
// pattern rather than the path keeps /countries/{id} a single series.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.status)).Inc()
	})
}
