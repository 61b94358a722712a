package common

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates a JSON slog.Logger writing to w. quiet forces error level.
func NewLogger(w io.Writer, level string, quiet bool) *slog.Logger {
	lvl := levelFromString(level)
	if quiet {
		lvl = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
