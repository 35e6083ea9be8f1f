// Package log centralizes logger construction and the structured field
// names used across the app.
package log

import (
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	Level   slog.Level
	Handler slog.Handler
}

// New creates a slog logger writing text to stdout unless a handler is
// provided.
func New(config Config) *slog.Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.Level})
	}
	return slog.New(handler)
}

// SetDefault installs the logger process-wide.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
