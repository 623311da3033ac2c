package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger: JSON in production, text elsewhere.
func NewLogger(cfg Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
