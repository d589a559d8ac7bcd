package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin key/value wrapper around a zap SugaredLogger.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a logger. mode is "dev" or "prod"; level is one of
// debug, info, warn, error. Output goes to stderr so it never mixes
// with command output on stdout.
func New(mode, level string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{SugaredLogger: zl.Sugar()}, nil
}

// Nop returns a logger that discards everything. Used in tests and as the
// default when a component is built without one.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// Sync flushes buffered entries. Errors are ignored: syncing stderr fails
// on some terminals.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

// Debug logs msg with alternating key/value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}

// Info logs msg with alternating key/value pairs.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}

// Warn logs msg with alternating key/value pairs. Degraded but recoverable
// conditions, such as an unreachable store, log at this level.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}

// Error logs msg with alternating key/value pairs.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}
