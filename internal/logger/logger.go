// Package logger builds the application's structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Lucas0204/Fin-API/internal/config"
)

// NewLogger creates a JSON slog.Logger at the configured level. Unknown
// levels fall back to info. Source locations are attached only at debug
// level to keep production output compact.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, opts)).
		With("app", cfg.Application.Name)

	log.Info("logger initialized", "level", level)

	return log
}
