package observability

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/jmwalls/windy/internal/config"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Formats: "json" for machine ingestion, "text" for plain logfmt, and
// "console" for tinted human-readable output during development.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	var handler slog.Handler
	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case "console":
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
