// Package api configures and exposes the HTTP server, routes, metrics, docs
// and related middleware for the loan checker service.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"loanchecker/internal/api/handler/v1handler"
	"loanchecker/internal/config"
	"loanchecker/pkg/controller"
	"loanchecker/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.uber.org/zap/exp/zapslog"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// SecHandlerOptions configures bearer authentication of the feedback listing.
	SecHandlerOptions *v1handler.SecHandlerOptions
	// HandlerOptions are the batch request defaults.
	HandlerOptions v1handler.Options

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string

	// RateLimitRequests per RateLimitWindow are allowed per client on the
	// score and check routes. Zero disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	opts := Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),
		HandlerOptions:    v1handler.NewOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
	if !cfg.HTTP.RateLimit.Disabled {
		opts.RateLimitRequests = cfg.HTTP.RateLimit.Requests
		opts.RateLimitWindow = cfg.HTTP.RateLimit.Window
	}

	return opts
}

type Deps struct {
	v1handler.Deps
}

// Server is the HTTP server with the resources its middlewares hold.
type Server struct {
	*http.Server

	limiter *controller.RateLimiter
}

// Close releases the middleware resources. It does not stop the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// NewServer wires up and returns a configured Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes and the HTML screens
// - pprof endpoints for profiling
// It also wraps the mux with CORS and logging middlewares and applies a request timeout.
func NewServer(deps Deps, opts Options) (*Server, error) {
	mux := http.NewServeMux()

	// prometheus metrics server
	mux.Handle(opts.MetricsPath, promhttp.Handler())

	// v1 specs file
	mux.HandleFunc("GET /specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle("/v1/docs/", v5emb.New(
		"Loan Approval Checker",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	// v1 api
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	h := v1handler.New(deps.Deps, opts.HandlerOptions)

	var limiter *controller.RateLimiter
	if opts.RateLimitRequests > 0 && opts.RateLimitWindow > 0 {
		limiter = controller.NewRateLimiter(opts.RateLimitRequests, opts.RateLimitWindow)
	}

	route := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, controller.WithMetrics(pattern, handler))
	}
	limited := func(handler http.HandlerFunc) http.Handler {
		return controller.WithRateLimit(limiter, handler)
	}

	route("POST /v1/scores", limited(h.Score))
	route("POST /v1/checks", limited(h.Check))
	route("POST /v1/checks/batch", limited(h.CheckBatch))
	route("POST /v1/feedback", limited(h.SubmitFeedback))
	route("GET /v1/feedback", secHandler.Middleware(h, http.HandlerFunc(h.ListFeedback)))
	route("GET /v1/screens/{screen}", http.HandlerFunc(h.Screen))

	// html screens
	route("GET /{$}", http.HandlerFunc(h.ScreenHTML))
	route("GET /screens/{screen}", http.HandlerFunc(h.ScreenHTML))

	// pprof
	mux.Handle(controller.PprofPrefix, controller.PprofMux(controller.PprofPrefix))

	// cors
	handler := controller.WithCORS(mux)

	// logger
	handler = controller.WithLogger(handler)

	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = opts.ReadTimeout
	}
	if requestTimeout > 0 {
		handler = http.TimeoutHandler(handler, requestTimeout, `{"error":"request timed out"}`)
	}

	return &Server{
		Server: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			MaxHeaderBytes:    opts.MaxHeaderBytes,
			ErrorLog:          slog.NewLogLogger(zapslog.NewHandler(logger.Get(context.Background()).Core()), slog.LevelError),
		},
		limiter: limiter,
	}, nil
}
