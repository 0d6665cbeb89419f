package controller

import (
	"net/http"
	"strconv"
	"time"

	"loanchecker/pkg/metrics"
)

// WithMetrics records request count and latency under a fixed route label.
// The label is the route pattern, never the raw path, to bound cardinality.
func WithMetrics(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
	})
}
