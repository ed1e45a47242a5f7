// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() to configure the default logger with level and format.

package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Init configures the default slog logger.
// level: debug, info, warn, error (default: info)
// format: text, json (default: text)
func Init(w io.Writer, level, format string) {
	slog.SetDefault(New(w, level, format))
}

// New builds a logger without installing it as the default
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
