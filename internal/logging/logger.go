// Package logging defines the structured-logging interface used across
// quietpage. The variadic args are key–value pairs:
//
//	log.Info(ctx, "page published", "pageId", id, "author", slug)
package logging

import "context"

// Logger is a context-aware, structured logger.
type Logger interface {
	// Debug logs developer-level detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
