package metrics_test

import (
	"context"
	"testing"

	"loanchecker/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewMeterProvider(t *testing.T) {
	reg := prometheus.NewRegistry()

	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	counter, err := mp.Meter("test").Int64Counter("widgets")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "widgets_total")
}

func TestCollectors(t *testing.T) {
	before := testutil.ToFloat64(metrics.BatchRows.WithLabelValues("failed"))
	metrics.BatchRows.WithLabelValues("failed").Add(3)
	require.InDelta(t, before+3, testutil.ToFloat64(metrics.BatchRows.WithLabelValues("failed")), 1e-9)
}
