// Package logger provides the structured JSON logger shared by the workspace,
// the HTTP API and the command-line tools. The formula engine itself never logs.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger embeds *zap.Logger so callers log with zap fields directly.
type Logger struct {
	*zap.Logger
}

// NewLogger returns an Info-level JSON logger on stdout.
func NewLogger() (*Logger, error) {
	return NewLoggerWithLevel(zapcore.InfoLevel)
}

// NewLoggerWithLevel returns a JSON logger on stdout that drops entries below level.
// Logger failures go to stderr.
func NewLoggerWithLevel(level zapcore.Level) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zl}, nil
}

// NewNopLogger is the default for components constructed without a logger.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Component tags every entry with the name of the emitting subsystem.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("component", name))}
}

// Sync flushes buffered entries. Safe on a nil or empty Logger.
func (l *Logger) Sync() error {
	if l == nil || l.Logger == nil {
		return nil
	}

	return l.Logger.Sync()
}
