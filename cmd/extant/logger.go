package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

// newLogger creates a slog.Logger writing to `w`. It does not set the
// global logger.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, errors.Newf("invalid log level %q: must be 'debug', 'info', 'warn' or 'error'",
			levelStr)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(formatStr) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, errors.Newf("invalid log format %q: must be 'text' or 'json'", formatStr)
}
