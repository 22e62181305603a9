package bikestats

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bikestats-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithSource adds a source field to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// LogLoad logs loading one dataset file.
func (l *Logger) LogLoad(ctx context.Context, source string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"source", source,
			"rows", rows,
		)
	}
}

// LogFilter logs applying a filter.
func (l *Logger) LogFilter(ctx context.Context, filter string, selected, total int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "filter failed",
			"filter", filter,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "filter applied",
			"filter", filter,
			"selected", selected,
			"total", total,
		)
	}
}

// LogCluster logs a k-means run.
func (l *Logger) LogCluster(ctx context.Context, k, iterations int, converged bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "clustering failed",
			"k", k,
			"error", err,
		)
	case !converged:
		l.WarnContext(ctx, "clustering stopped before convergence",
			"k", k,
			"iterations", iterations,
		)
	default:
		l.DebugContext(ctx, "clustering completed",
			"k", k,
			"iterations", iterations,
		)
	}
}
