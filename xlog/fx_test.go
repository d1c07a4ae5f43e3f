package xlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func TestFxXLogger(t *testing.T) {
	w := &testMemOutWriter{}
	logger := NewXLogger(WithXLoggerWriter(zapcore.AddSync(w)))

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return NewFxXLogger(logger)
		}),
		fx.Supply(3),
		fx.Invoke(func(n int) {
			require.Equal(t, 3, n)
		}),
	)
	require.NoError(t, app.Err())
	require.NoError(t, app.Start(context.Background()))
	require.NoError(t, app.Stop(context.Background()))

	lines := w.lines(t)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		require.Equal(t, "fx", line["component"])
		require.NotContains(t, line, "callAt")
	}
	msgs := make([]any, 0, len(lines))
	for _, line := range lines {
		msgs = append(msgs, line["msg"])
	}
	require.Contains(t, msgs, "invoking")
	require.Contains(t, msgs, "started")
}

func TestFxXLogger_Errors(t *testing.T) {
	w := &testMemOutWriter{}
	logger := NewFxXLogger(NewXLogger(WithXLoggerWriter(zapcore.AddSync(w))))
	logger.LogEvent(&fxevent.Invoked{FunctionName: "run", Err: errors.New("invoke")})
	logger.LogEvent(&fxevent.Started{Err: errors.New("start")})

	var nilLogger *FxXLogger
	nilLogger.LogEvent(&fxevent.Started{})

	lines := w.lines(t)
	require.Len(t, lines, 2)
	require.Equal(t, "invoke", lines[0]["error"])
	require.Equal(t, "run", lines[0]["function"])
	require.Equal(t, "ERROR", lines[1]["lvl"])
}
