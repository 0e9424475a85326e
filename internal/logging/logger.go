// Package logging is the structured logger used by the client packages.
// SlogLogger is the only implementation; tests use NewNopLogger.
package logging

import "context"

// Logger takes a message plus alternating key/value pairs:
//
//	logger.Info(ctx, "template created", "id", id, "category", category)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
