package kmeanspp

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kmeanspp-specific context.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRun adds a run identifier to the logger.
func (l *Logger) WithRun(run string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("points", count),
	}
}

// LogSeed logs the end of k-means++ seeding.
func (l *Logger) LogSeed(ctx context.Context, n, k int, duration time.Duration) {
	l.DebugContext(ctx, "seeding completed",
		"points", n,
		"k", k,
		"duration", duration,
	)
}

// LogIteration logs one refinement pass.
func (l *Logger) LogIteration(ctx context.Context, iteration, changed, threshold int) {
	l.DebugContext(ctx, "refinement pass",
		"iteration", iteration,
		"changed", changed,
		"threshold", threshold,
	)
}

// LogCluster logs a clustering run.
func (l *Logger) LogCluster(ctx context.Context, n, k, iterations int, converged bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"points", n,
			"k", k,
			"iterations", iterations,
			"error", err,
		)
		return
	}
	if !converged {
		l.WarnContext(ctx, "clustering stopped before convergence",
			"points", n,
			"k", k,
			"iterations", iterations,
			"duration", duration,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"points", n,
		"k", k,
		"iterations", iterations,
		"duration", duration,
	)
}

// LogSave logs a snapshot write.
func (l *Logger) LogSave(ctx context.Context, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogLoad logs a snapshot read.
func (l *Logger) LogLoad(ctx context.Context, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot loaded",
			"name", name,
			"bytes", bytes,
		)
	}
}
