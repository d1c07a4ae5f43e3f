package xlog

import (
	"github.com/samber/lo"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FxXLogger adapts fx lifecycle events to an XLogger.
type FxXLogger struct {
	logger XLogger
}

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.logger.Error(e.Err, "on start hook failed",
				zap.String("function", e.FunctionName),
				zap.Duration("runtime", e.Runtime),
			)
			return
		}
		l.logger.Debug("on start hook done",
			zap.String("function", e.FunctionName),
			zap.Duration("runtime", e.Runtime),
		)
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.logger.Error(e.Err, "on stop hook failed",
				zap.String("function", e.FunctionName),
				zap.Duration("runtime", e.Runtime),
			)
			return
		}
		l.logger.Debug("on stop hook done",
			zap.String("function", e.FunctionName),
			zap.Duration("runtime", e.Runtime),
		)
	case *fxevent.Supplied:
		if e.Err != nil {
			l.logger.Error(e.Err, "supply failed", zap.String("type", e.TypeName))
			return
		}
		l.logger.Debug("supplied", zap.String("type", e.TypeName))
	case *fxevent.Provided:
		if e.Err != nil {
			l.logger.Error(e.Err, "provide failed", zap.String("constructor", e.ConstructorName))
			return
		}
		l.logger.Debug("provided",
			zap.Strings("types", e.OutputTypeNames),
			zap.String("constructor", e.ConstructorName),
		)
	case *fxevent.Invoking:
		l.logger.Debug("invoking", zap.String("function", e.FunctionName))
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error(e.Err, "invoke failed",
				zap.String("function", e.FunctionName),
				zap.String("trace", e.Trace),
			)
		}
	case *fxevent.Stopping:
		l.logger.Debug("stopping", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error(e.Err, "stop failed")
		}
	case *fxevent.RollingBack:
		l.logger.Warn("start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.logger.Error(e.Err, "rollback failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error(e.Err, "start failed")
			return
		}
		l.logger.Debug("started")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.logger.Error(e.Err, "custom logger initialization failed")
		}
	}
}

// NewFxXLogger logs the fx lifecycle as the "fx" component, without
// callers.
func NewFxXLogger(logger XLogger) *FxXLogger {
	l := &xLogger{}
	if xl, ok := logger.(*xLogger); ok {
		l.dynamicLevelEnabler = xl.dynamicLevelEnabler
	}
	l.logger.Store(logger.
		zap().
		Named("fx").
		WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			if core == nil {
				panic("[XLogger] core is nil")
			}
			if tee, ok := core.(*teeCore); ok && tee != nil {
				wrapped := make([]zapcore.Core, 0, len(tee.cores))
				for _, c := range tee.cores {
					wrapped = append(wrapped, lo.Must[XLogCore](wrapComponentCore(c)))
				}
				return newTeeCore(wrapped...)
			}
			return lo.Must[XLogCore](wrapComponentCore(core))
		})),
	)
	return &FxXLogger{logger: l}
}
