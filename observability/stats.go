package observability

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/infra"
)

// AppStats observes the process through the global meter provider, so it
// must be started after an exporter is installed.
type AppStats struct {
	heapAlloc  metric.Int64ObservableGauge
	goroutines metric.Int64ObservableUpDownCounter
	reg        metric.Registration
}

func (stats *AppStats) Unregister() error {
	if stats == nil || stats.reg == nil {
		return nil
	}
	return stats.reg.Unregister()
}

// StartAppStats registers the process gauges under the meter
// "xtree/app/<name>" and starts the otel runtime instrumentation.
func StartAppStats(name string, runtimeReadInterval time.Duration) (*AppStats, error) {
	if name = strings.TrimSpace(name); len(name) == 0 {
		name = "default"
	}
	meter := otel.Meter("xtree/app/"+name, metric.WithInstrumentationVersion(otelruntime.Version()))
	stats := &AppStats{
		heapAlloc: lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"app.heap.alloc",
			metric.WithDescription("The bytes of allocated heap objects."),
			metric.WithUnit("By"),
		)),
		goroutines: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.goroutines",
			metric.WithDescription("The number of goroutines."),
		)),
	}
	reg, err := meter.RegisterCallback(func(ctx context.Context, ob metric.Observer) error {
		ms := runtime.MemStats{}
		runtime.ReadMemStats(&ms)
		ob.ObserveInt64(stats.heapAlloc, int64(ms.HeapAlloc))
		ob.ObserveInt64(stats.goroutines, int64(runtime.NumGoroutine()))
		return nil
	}, stats.heapAlloc, stats.goroutines)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[metrics] register app stats")
	}
	stats.reg = reg
	if err = otelruntime.Start(otelruntime.WithMinimumReadMemStatsInterval(runtimeReadInterval)); err != nil {
		_ = reg.Unregister()
		return nil, infra.WrapErrorStackWithMessage(err, "[metrics] runtime instrumentation")
	}
	return stats, nil
}
