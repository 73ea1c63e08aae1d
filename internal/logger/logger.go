// Package logger provides structured logging for the service.
// It wraps log/slog with JSON output on stdout, optional Better Stack log
// shipping, and request-scoped fields taken from the context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	slogbetterstack "github.com/samber/slog-betterstack"
)

// Options configures optional log sinks.
type Options struct {
	// BetterStackToken enables log shipping when non-empty.
	BetterStackToken string
	// BetterStackEndpoint overrides the ingesting host.
	BetterStackEndpoint string
	// Async tunes the shipping queue.
	Async AsyncOptions
}

// Logger is the application logger.
type Logger struct {
	*slog.Logger
	level   slog.Level
	shipper *AsyncHandler
}

// New creates a JSON logger writing to stdout.
func New(level string) *Logger {
	return NewWithOptions(level, os.Stdout, Options{})
}

// NewWithWriter creates a JSON logger writing to w.
func NewWithWriter(level string, w io.Writer) *Logger {
	return NewWithOptions(level, w, Options{})
}

// NewWithOptions creates a JSON logger writing to w, fanned out to Better
// Stack when a token is configured. Every handler is wrapped so request_id
// and user_id are read from the context.
func NewWithOptions(level string, w io.Writer, opts Options) *Logger {
	logLevel := ParseLevel(level)

	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: renameAttrs,
	})

	var shipper *AsyncHandler
	if opts.BetterStackToken != "" {
		remote := slogbetterstack.Option{
			Level:    logLevel,
			Token:    opts.BetterStackToken,
			Endpoint: opts.BetterStackEndpoint,
		}.NewBetterstackHandler()
		shipper = NewAsyncHandler(remote, opts.Async)
		handler = NewMultiHandler(handler, shipper)
	}

	return &Logger{
		Logger:  slog.New(NewContextHandler(handler)),
		level:   logLevel,
		shipper: shipper,
	}
}

// ParseLevel maps a config string to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// renameAttrs produces timestamp/level/message keys with lowercase levels.
func renameAttrs(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.LevelKey:
		lvl := strings.ToLower(a.Value.String())
		if lvl == "warn" {
			lvl = "warning"
		}
		a.Value = slog.StringValue(lvl)
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// Level returns the configured minimum level.
func (l *Logger) Level() slog.Level {
	return l.level
}

func (l *Logger) derive(inner *slog.Logger) *Logger {
	return &Logger{Logger: inner, level: l.level, shipper: l.shipper}
}

// WithModule adds a module field.
func (l *Logger) WithModule(module string) *Logger {
	return l.derive(l.With("module", module))
}

// WithRequestID adds a request_id field.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.derive(l.With("request_id", requestID))
}

// WithError adds an error field.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.With("error", err))
}

// WithField adds a single field.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.derive(l.With(key, value))
}

// WithFields adds several fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return l.derive(l.With(args...))
}

// Shutdown drains the Better Stack queue. It is a no-op without shipping.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l == nil || l.shipper == nil {
		return nil
	}
	return l.shipper.Shutdown(ctx)
}
