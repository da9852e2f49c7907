package tickscan

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger with tickscan-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithRun tags every record with a scan run id.
func (l *Logger) WithRun(id uuid.UUID) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", id.String()),
	}
}

// WithFile adds the name of the scanned file or blob.
func (l *Logger) WithFile(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file", name),
	}
}

// LogOpen logs the construction of a record source.
func (l *Logger) LogOpen(ctx context.Context, mode Mode, records int, size int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"mode", mode.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "source opened",
			"mode", mode.String(),
			"records", records,
			"bytes", size,
		)
	}
}

// LogScan logs a completed or failed scan.
func (l *Logger) LogScan(ctx context.Context, kind string, sum Summary, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scan failed",
			"kind", kind,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "scan completed",
			"kind", kind,
			"records", sum.Records,
			"elapsed", sum.Elapsed.Round(time.Microsecond),
			"us_per_record", sum.MicrosPerRecord(),
			"gibit_per_sec", sum.GibitPerSec(),
		)
	}
}

// LogClose logs the release of a source.
func (l *Logger) LogClose(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "close failed", "error", err)
	} else {
		l.DebugContext(ctx, "source closed")
	}
}
