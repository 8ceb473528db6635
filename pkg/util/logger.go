package util

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide logger: readable text at debug level in
// development, JSON at info level everywhere else. Every line carries the app
// name so the server, worker and seed logs can be told apart downstream.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("app", "hrmtrack")
}
