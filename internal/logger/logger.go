// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Logs go to stderr so command output on stdout stays machine-readable.

package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the default slog logger based on environment variables.
// ZELQORA_LOG_LEVEL: debug, info, warn, error (default: warn, quiet for a CLI)
// ZELQORA_LOG_FORMAT: text, json (default: text)
func Init() {
	level := parseLevel(os.Getenv("ZELQORA_LOG_LEVEL"))
	format := strings.ToLower(os.Getenv("ZELQORA_LOG_FORMAT"))

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
