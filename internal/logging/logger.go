// Package logging defines the small structured-logging interface the server
// and client share. The interface keeps call sites independent of the
// concrete backend; slog is the one wired in.
package logging

import "context"

// Logger logs structured messages. Variadic args are alternating key-value
// pairs, as in:
//
//	log.Info(ctx, "listening", "addr", addr)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn reports unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that attaches the given key-value pairs
	// to every record.
	With(args ...any) Logger
}
