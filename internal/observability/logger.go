package observability

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"github.com/sekarsister/choropleth/internal/config"
)

// NewLogger creates a console logger writing to w at the configured level.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      parseLevel(cfg.LogLevel),
		TimeFormat: time.TimeOnly,
		NoColor:    !cfg.LogColor,
	}))
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
