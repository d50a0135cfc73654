// Package ctxlog carries the run's logger through a reconciliation. The app
// attaches it once, and the loader, engine, executor and query evaluators
// read it back, so a definition's log lines share its attributes.
package ctxlog

import (
	"context"
	"log/slog"
)

type loggerCtxKey struct{}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// With returns ctx whose logger has args added to every record, e.g. the
// definition file being reconciled.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// FromContext returns the logger attached to ctx, or slog.Default for a
// context that never went through the app.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
