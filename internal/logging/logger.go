// Package logging defines the structured-logging interface the rest of the
// project depends on, plus adapters for slog and zap. Components take a
// Logger rather than a concrete implementation so the harness and the tests
// can choose their own backends.
package logging

import "context"

// Logger is a leveled, context-aware logger. Variadic args alternate keys
// and values:
//
//	log.Warn(ctx, "stored record unreadable", "key", dbKey)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record.
	With(args ...any) Logger
}
