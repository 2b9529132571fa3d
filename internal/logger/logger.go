// Package logger configures the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Init installs a tint handler as the default slog logger. tint adds color
// to the output, which makes the logs easier to read during development.
// The level is taken from LOG_LEVEL (debug, info, warn, error; default info).
func Init() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level(os.Getenv("LOG_LEVEL")),
			TimeFormat: time.Kitchen,
		}),
	))
}

func level(s string) slog.Level {
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
