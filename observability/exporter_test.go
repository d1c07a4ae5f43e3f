package observability

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestConsoleMetricsExporter(t *testing.T) {
	out := &bytes.Buffer{}
	shutdown, err := NewConsoleMetricsExporter(time.Hour, time.Second, stdoutmetric.WithWriter(out))
	require.NoError(t, err)

	counter, err := otel.Meter("xtree/test").Int64Counter("test.console.count")
	require.NoError(t, err)
	counter.Add(context.Background(), 5)

	require.NoError(t, shutdown(context.Background()))
	require.Contains(t, out.String(), "test.console.count")
}

func TestPrometheusMetricsExporter(t *testing.T) {
	out := &bytes.Buffer{}
	shutdown, err := NewPrometheusMetricsExporter(out)
	require.NoError(t, err)

	counter, err := otel.Meter("xtree/test").Int64Counter("test_prom_count", metric.WithDescription("test counter"))
	require.NoError(t, err)
	counter.Add(context.Background(), 7)

	require.NoError(t, shutdown(context.Background()))
	require.Contains(t, out.String(), "# TYPE test_prom_count_total counter")
	require.Contains(t, out.String(), "test_prom_count_total 7")
}

func TestAppStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	defer func() {
		_ = mp.Shutdown(context.Background())
	}()

	stats, err := StartAppStats(" ", time.Second)
	require.NoError(t, err)

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	names := make(map[string]string)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = sm.Scope.Name
		}
	}
	require.Equal(t, "xtree/app/default", names["app.heap.alloc"])
	require.Equal(t, "xtree/app/default", names["app.core.goroutines"])

	require.NoError(t, stats.Unregister())
	var nilStats *AppStats
	require.NoError(t, nilStats.Unregister())
}
