package logger

import (
	"log/slog"
	"os"
)

// Interface abstracts *slog.Logger for dependency injection, mirroring the
// teacher's Interface/zapLogger split but over slog's key-value args
// convention instead of zap.Field.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	With(args ...any) Interface
	WithGroup(name string) Interface
}

// slogLogger implements Interface.
type slogLogger struct {
	logger *slog.Logger
}

// NewLogger creates a new logger instance backed by the global logger.
func NewLogger() Interface {
	return &slogLogger{logger: Get()}
}

// NewLoggerWithSlog creates a new logger instance wrapping an existing
// *slog.Logger.
func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l}
}

// Debug implements Interface
func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info implements Interface
func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn implements Interface
func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error implements Interface
func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Fatal implements Interface
func (l *slogLogger) Fatal(msg string, args ...any) {
	l.logger.Error(msg, args...)
	os.Exit(1)
}

// With implements Interface
func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{logger: l.logger.With(args...)}
}

// WithGroup implements Interface
func (l *slogLogger) WithGroup(name string) Interface {
	return &slogLogger{logger: l.logger.WithGroup(name)}
}
