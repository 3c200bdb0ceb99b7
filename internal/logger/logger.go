// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

// Logger is the global logger instance. It writes to stderr so log
// lines never interleave with the TUI on stdout.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

func init() {
	if os.Getenv("BATGLANCE_DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}
}

// SetLevel adjusts the minimum logged level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
