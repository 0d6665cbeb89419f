// Package metrics holds the process-wide Prometheus collectors and the
// OpenTelemetry meter provider that exports into the same registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets are latency buckets in seconds.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanchecker_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loanchecker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: DefaultBuckets,
		},
		[]string{"route", "method"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loanchecker_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	BatchRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanchecker_batch_rows_total",
			Help: "Total number of uploaded batch rows by outcome",
		},
		[]string{"outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanchecker_prediction_cache_lookups_total",
			Help: "Total number of prediction cache lookups by result",
		},
		[]string{"result"},
	)
)

// NewMeterProvider creates an OpenTelemetry meter provider whose instruments
// are exported through registerer.
func NewMeterProvider(registerer prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}
