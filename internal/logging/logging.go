// Package logging builds the slog loggers used across parley.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/example/parley/internal/ctxutil"
)

// ParseLevel converts a level name (debug, info, warn, error) to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// New returns a text logger writing to w at the given level.
// An unknown level falls back to info.
func New(level string, w io.Writer) *slog.Logger {
	lvl, _ := ParseLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FromContext decorates log with the actor and request id carried by ctx.
func FromContext(ctx context.Context, log *slog.Logger) *slog.Logger {
	if actor, ok := ctxutil.ActorFromContext(ctx); ok {
		log = log.With("actor", actor.String())
	}
	if id := ctxutil.RequestIDFromContext(ctx); id != "" {
		log = log.With("request_id", id)
	}
	return log
}
