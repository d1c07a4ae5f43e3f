package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/observability"
	"github.com/benz9527/xtree/xlog"
)

// Output is where the rendered trees go, logs go to Log.
type Output struct {
	Out io.Writer
	Log io.Writer
}

// Metrics is provided once the exporter selected by the config is
// installed, the tree stats are only recorded after that.
type Metrics struct {
	Enabled bool
}

func newLogger(cfg *Config, out Output) (xlog.XLogger, error) {
	enc, ok := xlog.ParseLogEncoder(cfg.LogEncoder)
	if !ok {
		return nil, infra.NewErrorStack("[xtree] unknown log encoder " + cfg.LogEncoder)
	}
	return xlog.NewXLogger(
		xlog.WithXLoggerWriter(zapcore.AddSync(out.Log)),
		xlog.WithXLoggerEncoder(enc),
		xlog.WithXLoggerLevel(xlog.ParseLogLevel(cfg.LogLevel)),
	), nil
}

func newMetrics(lc fx.Lifecycle, cfg *Config, out Output, logger xlog.XLogger) (*Metrics, error) {
	var (
		shutdown observability.ShutdownCallback
		err      error
	)
	switch strings.ToLower(cfg.Metrics) {
	case metricsStdout:
		shutdown, err = observability.NewConsoleMetricsExporter(
			cfg.MetricsInterval,
			cfg.MetricsInterval,
			stdoutmetric.WithWriter(out.Out),
			stdoutmetric.WithPrettyPrint(),
		)
	case metricsPrometheus:
		shutdown, err = observability.NewPrometheusMetricsExporter(out.Out)
	default:
		return &Metrics{}, nil
	}
	if err != nil {
		return nil, err
	}
	stats, err := observability.StartAppStats("xtree", cfg.MetricsInterval)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}
	lc.Append(fx.Hook{
		// The exporter flushes on shutdown, the observers must still be
		// registered then.
		OnStop: func(ctx context.Context) error {
			err := shutdown(ctx)
			if unregErr := stats.Unregister(); unregErr != nil {
				logger.ErrorStack(unregErr, "unregister app stats")
				err = multierr.Append(err, unregErr)
			}
			return err
		},
	})
	logger.Debug("metrics exporter installed", zap.String("exporter", cfg.Metrics))
	return &Metrics{Enabled: true}, nil
}

// runApp runs body inside an fx application, the lifecycle hooks (metrics
// flush) run after the body returns.
func runApp(cmd *cobra.Command, cfg *Config, body any) error {
	out := Output{Out: cmd.OutOrStdout(), Log: cmd.ErrOrStderr()}
	app := fx.New(
		fx.Supply(cfg, out),
		fx.Provide(newLogger, newMetrics),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(body),
	)
	if err := app.Err(); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(ctx)
}
