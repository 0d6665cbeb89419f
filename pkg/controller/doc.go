// Package controller contains the HTTP middlewares shared by every route:
// CORS, request-scoped logging, Prometheus request metrics and per-client
// rate limiting, plus the pprof debug mux.
package controller
