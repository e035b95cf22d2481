package log

import (
	"context"
)

type contextLogKeyType struct{}

// Unique key type, so there is never a conflict with other packages
var contextLogKey contextLogKeyType

// LogContext returns a new context carrying the given logger.
func LogContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextLogKey, logger.Clone())
}

// ContextWith returns a new context whose logger (see FromContext) has
// the given key/value pairs added.
func ContextWith(ctx context.Context, keysAndValues ...interface{}) context.Context {
	return context.WithValue(ctx, contextLogKey, FromContext(ctx).With(keysAndValues...))
}

// FromContext returns the logger carried by ctx, or the default logger
// if there is none.
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(contextLogKey).(Logger); ok {
		return logger
	}
	return Default()
}
