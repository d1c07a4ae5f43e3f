package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"

	"github.com/benz9527/xtree/lib/infra"
)

type ShutdownCallback func(ctx context.Context) error

// NewConsoleMetricsExporter installs a global meter provider that prints
// the metrics every interval and once more on shutdown.
func NewConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (ShutdownCallback, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[metrics] stdout exporter")
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// NewPrometheusMetricsExporter installs a global meter provider backed by
// a private prometheus registry. The callback writes the registry in the
// prometheus text format to out, then shuts the provider down.
func NewPrometheusMetricsExporter(out io.Writer) (ShutdownCallback, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(
		prometheus.WithRegisterer(registry),
		prometheus.WithoutScopeInfo(),
	)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[metrics] prometheus exporter")
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return func(ctx context.Context) error {
		if err := WritePrometheusText(out, registry); err != nil {
			_ = mp.Shutdown(ctx)
			return err
		}
		return mp.Shutdown(ctx)
	}, nil
}

func WritePrometheusText(out io.Writer, gatherer promclient.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return infra.WrapErrorStackWithMessage(err, "[metrics] gather")
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(out, mf); err != nil {
			return infra.WrapErrorStackWithMessage(err, "[metrics] text format")
		}
	}
	return nil
}
