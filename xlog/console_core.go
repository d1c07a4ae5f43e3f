package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ XLogCore = (*consoleCore)(nil)

type consoleCore struct {
	lvlEnabler zapcore.LevelEnabler
	lvlEnc     zapcore.LevelEncoder
	tsEnc      zapcore.TimeEncoder
	ws         zapcore.WriteSyncer
	enc        func(cfg zapcore.EncoderConfig) zapcore.Encoder
	core       zapcore.Core
}

func (cc *consoleCore) timeEncoder() zapcore.TimeEncoder   { return cc.tsEnc }
func (cc *consoleCore) levelEncoder() zapcore.LevelEncoder { return cc.lvlEnc }
func (cc *consoleCore) writeSyncer() zapcore.WriteSyncer   { return cc.ws }
func (cc *consoleCore) outEncoder() func(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return cc.enc
}
func (cc *consoleCore) Enabled(lvl zapcore.Level) bool { return cc.lvlEnabler.Enabled(lvl) }
func (cc *consoleCore) Sync() error                    { return cc.core.Sync() }

// With keeps the returned core an XLogCore, the fx logger rewraps it.
func (cc *consoleCore) With(fields []zap.Field) zapcore.Core {
	clone := *cc
	clone.core = cc.core.With(fields)
	return &clone
}

func (cc *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if cc.Enabled(ent.Level) {
		return ce.AddCore(ent, cc)
	}
	return ce
}

func (cc *consoleCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	return cc.core.Write(ent, fields)
}

var consoleCoreEncoderCfg = zapcore.EncoderConfig{
	MessageKey:    "msg",
	LevelKey:      "lvl",
	TimeKey:       "ts",
	CallerKey:     "callAt",
	EncodeCaller:  zapcore.ShortCallerEncoder,
	FunctionKey:   coreKeyIgnored,
	NameKey:       "component",
	EncodeName:    zapcore.FullNameEncoder,
	StacktraceKey: coreKeyIgnored,
}

// componentCoreEncoderCfg drops the caller, component loggers (fx) log
// from library frames only.
var componentCoreEncoderCfg = zapcore.EncoderConfig{
	MessageKey:    "msg",
	LevelKey:      "lvl",
	TimeKey:       "ts",
	CallerKey:     coreKeyIgnored,
	FunctionKey:   coreKeyIgnored,
	NameKey:       "component",
	EncodeName:    zapcore.FullNameEncoder,
	StacktraceKey: coreKeyIgnored,
}

func newConsoleCore(
	lvlEnabler zapcore.LevelEnabler,
	encoder logEncoderType,
	ws zapcore.WriteSyncer,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
) XLogCore {
	if ws == nil {
		return nil
	}
	cc := &consoleCore{
		lvlEnabler: lvlEnabler,
		lvlEnc:     lvlEnc,
		tsEnc:      tsEnc,
		ws:         ws,
		enc:        getEncoderByType(encoder),
	}
	cc.core = zapcore.NewCore(cc.enc(cc.encoderConfig(consoleCoreEncoderCfg)), cc.ws, cc.lvlEnabler)
	return cc
}

func (cc *consoleCore) encoderConfig(cfg zapcore.EncoderConfig) zapcore.EncoderConfig {
	cfg.EncodeLevel = cc.lvlEnc
	cfg.EncodeTime = cc.tsEnc
	return cfg
}

// wrapComponentCore rebuilds core with the component encoder config, same
// writer and level enabler.
func wrapComponentCore(core zapcore.Core) (XLogCore, error) {
	cc, ok := core.(*consoleCore)
	if !ok || cc == nil {
		return nil, errNotXLogCore
	}
	wrapped := *cc
	wrapped.core = zapcore.NewCore(cc.enc(cc.encoderConfig(componentCoreEncoderCfg)), cc.ws, cc.lvlEnabler)
	return &wrapped, nil
}

// teeCore remembers its members so they can be rewrapped.
type teeCore struct {
	zapcore.Core
	cores []zapcore.Core
}

func newTeeCore(cores ...zapcore.Core) zapcore.Core {
	return &teeCore{
		Core:  zapcore.NewTee(cores...),
		cores: cores,
	}
}
