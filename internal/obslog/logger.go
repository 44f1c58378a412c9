// Package obslog wraps go.uber.org/zap behind a small interface so call
// sites never import zap directly. The interface shape mirrors the
// Debug/Info/Warn/Error/Fatal + "w"-suffixed structured-field convention
// used throughout the reference corpus's own logger wrapper.
package obslog

import (
	"go.uber.org/zap"
)

// Logger is the logging interface used by every package in this module.
type Logger interface {
	Name() string
	Named(name string) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	// Sync flushes any buffered log entries.
	Sync() error
}

type zapLogger struct {
	name   string
	sugar  *zap.SugaredLogger
}

// New returns a production zap-backed Logger writing to stderr.
func New() Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return &zapLogger{sugar: z.Sugar()}
}

// NewNop returns a Logger that discards everything, for tests.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Name() string { return l.name }

func (l *zapLogger) Named(name string) Logger {
	full := name
	if l.name != "" {
		full = l.name + "." + name
	}
	return &zapLogger{name: full, sugar: l.sugar.Named(name)}
}

func (l *zapLogger) Debug(args ...any) { l.sugar.Debug(args...) }
func (l *zapLogger) Info(args ...any)  { l.sugar.Info(args...) }
func (l *zapLogger) Warn(args ...any)  { l.sugar.Warn(args...) }
func (l *zapLogger) Error(args ...any) { l.sugar.Error(args...) }

func (l *zapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

func (l *zapLogger) Debugw(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *zapLogger) Infow(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *zapLogger) Warnw(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *zapLogger) Errorw(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

func (l *zapLogger) Sync() error { return l.sugar.Sync() }
