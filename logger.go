package growvec

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with growvec-specific context.
// This provides structured logging with consistent field names.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName tags every record with a vector name (useful when several vectors share a logger).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("vector", name),
	}
}

// LogGrow logs a buffer reallocation.
func (l *Logger) LogGrow(from, to int, err error) {
	if err != nil {
		l.Error("grow failed",
			"from_capacity", from,
			"to_capacity", to,
			"error", err,
		)
	} else {
		l.Debug("grow completed",
			"from_capacity", from,
			"to_capacity", to,
		)
	}
}

// LogRelease logs deleter invocations triggered by reason (set, remove, clear, truncate, close).
func (l *Logger) LogRelease(reason string, count int) {
	if count == 0 {
		return
	}
	l.Debug("elements released",
		"reason", reason,
		"count", count,
	)
}

// LogClose logs the destruction of a vector.
func (l *Logger) LogClose(size, capacity int) {
	l.Debug("vector closed",
		"size", size,
		"capacity", capacity,
	)
}

// LogCopyFailure logs a failed element clone.
func (l *Logger) LogCopyFailure(index int, err error) {
	l.Error("copy failed",
		"index", index,
		"error", err,
	)
}
