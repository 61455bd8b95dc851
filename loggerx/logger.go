package loggerx

import (
	"context"
	"io"
	"log/slog"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"go.opentelemetry.io/otel/attribute"

	"github.com/amphora/patentsafe-submit/errorx"
)

type Format string

const (
	FormatText = Format("text")
	FormatJSON = Format("json")
)

type Logger struct {
	*slog.Logger
}

// New returns a logger writing records at or above level to w.
// Attributes prepended to the context with slogctx and the request id set with WithRequestID are
// added to every record.
func New(w io.Writer, level slog.Level, format Format) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	h = slogctx.NewHandler(h, &slogctx.HandlerOptions{
		Prependers: []slogctx.AttrExtractor{
			slogctx.ExtractPrepended,
			NewRequestIDExtractor(requestIDKey{}, RequestIDFieldKey),
		},
		Appenders: []slogctx.AttrExtractor{
			slogctx.ExtractAppended,
		},
	})

	return &Logger{slog.New(h)}
}

// NewNop returns a logger that drops every record.
func NewNop() *Logger {
	return &Logger{slog.New(slog.DiscardHandler)}
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errorx.InvalidArgumentErrorf("unknown log level %q", level)
	}
}

func ParseFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(format))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return FormatText, errorx.InvalidArgumentErrorf("unknown log format %q, expected one of [text, json]", format)
	}
}

// LevelFromVerbosity lowers level by one step per -v flag, never below debug.
func LevelFromVerbosity(level slog.Level, verbose int) slog.Level {
	for i := 0; i < verbose && level > slog.LevelDebug; i++ {
		level -= 4
	}
	if level < slog.LevelDebug {
		return slog.LevelDebug
	}
	return level
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.Logger.With(ErrorAttr(err))}
}

func (l *Logger) Error(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelError, msg, NewLogFields(kvs...)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelWarn, msg, NewLogFields(kvs...)...)
}

func (l *Logger) Info(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelInfo, msg, NewLogFields(kvs...)...)
}

func (l *Logger) Debug(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	l.Logger.LogAttrs(ctx, slog.LevelDebug, msg, NewLogFields(kvs...)...)
}

func (l *Logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.Logger.Enabled(ctx, level)
}

func (l *Logger) WithFields(kvs ...attribute.KeyValue) *Logger {
	args := make([]any, 0, len(kvs))
	for _, a := range NewLogFields(kvs...) {
		args = append(args, a)
	}
	return &Logger{l.Logger.With(args...)}
}
