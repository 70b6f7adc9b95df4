package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"doc-intelligence/internal/domain"
)

// AppLogger implements the domain.Logger interface on top of log/slog.
type AppLogger struct {
	logger *slog.Logger
}

// NewLogger creates a logger writing text records to stdout.
func NewLogger(levelStr string) domain.Logger {
	return NewLoggerWithWriter(levelStr, os.Stdout)
}

// NewLoggerWithWriter creates a logger writing text records to w.
func NewLoggerWithWriter(levelStr string, w io.Writer) domain.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(levelStr)})
	return &AppLogger{logger: slog.New(handler)}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.logger.Info(msg, fields...)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	if !l.logger.Enabled(context.Background(), slog.LevelError) {
		return
	}
	l.logger.Error(msg, append([]interface{}{"error", err}, fields...)...)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.logger.Debug(msg, fields...)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.logger.Warn(msg, fields...)
}

// parseLogLevel converts string log level to a slog level
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
