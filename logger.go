package datapack

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with datapack-specific context.
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

// WithLocation adds a location field to the logger.
func (l *Logger) WithLocation(location string) *Logger {
	return &Logger{
		Logger: l.Logger.With("location", location),
	}
}

// LogLoad logs the outcome of opening a dataset.
func (l *Logger) LogLoad(ctx context.Context, location, kind, source string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"location", location,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "dataset loaded",
			"location", location,
			"content_kind", kind,
			"source_kind", source,
		)
	}
}

// LogSave logs the outcome of a save.
func (l *Logger) LogSave(ctx context.Context, location string, chunks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"location", location,
			"chunks_written", chunks,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset saved",
			"location", location,
			"chunks", chunks,
		)
	}
}

// LogChunk logs a chunk-level failure that ended a sequence.
func (l *Logger) LogChunk(ctx context.Context, location string, err error) {
	l.WarnContext(ctx, "chunk sequence ended with error",
		"location", location,
		"error", err,
	)
}

// LogFallback logs that a dataset without manifest will be sniffed.
func (l *Logger) LogFallback(ctx context.Context, location string) {
	l.DebugContext(ctx, "no manifest, content kind will be detected",
		"location", location,
	)
}

// LogPrune logs removal of stale chunks after a save.
func (l *Logger) LogPrune(ctx context.Context, location string, pruned int, err error) {
	if err != nil {
		l.WarnContext(ctx, "pruning stale chunks failed",
			"location", location,
			"error", err,
		)
	} else if pruned > 0 {
		l.DebugContext(ctx, "stale chunks pruned",
			"location", location,
			"pruned", pruned,
		)
	}
}
