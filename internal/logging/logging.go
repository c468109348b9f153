// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a slog.Logger writing to w. format "json" selects the JSON
// handler; anything else gets the text handler. Debug records are only
// emitted outside production.
func New(w io.Writer, format, appEnv string) *slog.Logger {
	level := slog.LevelDebug
	if appEnv == "production" {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", "fileport")
}

// Setup installs a stdout logger as the slog default and returns it.
func Setup(format, appEnv string) *slog.Logger {
	logger := New(os.Stdout, format, appEnv)
	slog.SetDefault(logger)
	return logger
}
