package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the context key under which a named logger is stored.
type loggerKey struct{}

// WithName returns a context carrying a copy of the global logger with the
// given name attached to every entry.
func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, loggerKey{}, Logger().Named(name))
}

// FromContext returns the logger stored in the context,
// falling back to the global logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return l
	}

	return Logger()
}
