// Package logger wraps slog.Logger with field names shared across the
// engine and its drivers.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with corewars-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithMatch tags every record with the match id.
func (l *Logger) WithMatch(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("match", id),
	}
}

// LogLoad logs the outcome of loading warrior groups into the arena.
func (l *Logger) LogLoad(ctx context.Context, groups, warriors int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"groups", groups,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "warriors loaded",
		"groups", groups,
		"warriors", warriors,
	)
}

// LogDeath logs a warrior being killed by a fault.
func (l *Logger) LogDeath(ctx context.Context, round int, name string, err error) {
	l.DebugContext(ctx, "warrior died",
		"round", round,
		"warrior", name,
		"error", err,
	)
}

// LogMatchEnd logs the final state of a match.
func (l *Logger) LogMatchEnd(ctx context.Context, rounds int, survivors string, timedOut bool) {
	if timedOut {
		l.WarnContext(ctx, "match hit the round limit",
			"rounds", rounds,
			"survivors", survivors,
		)
		return
	}
	l.InfoContext(ctx, "match over",
		"rounds", rounds,
		"survivors", survivors,
	)
}
