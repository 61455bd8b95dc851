package loggerx

import (
	"context"
	"log/slog"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

const RequestIDFieldKey = "request_id"

type requestIDKey struct{}

// WithRequestID stores the id of the submission being sent so that it is logged with every record.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func NewRequestIDExtractor(requestIDContextKey interface{}, requestIDFieldKey string) slogctx.AttrExtractor {
	return func(ctx context.Context, recordT time.Time, recordLvl slog.Level, recordMsg string) []slog.Attr {
		if ctx == nil {
			return nil
		}
		requestID := ctx.Value(requestIDContextKey)
		if requestID == nil {
			return nil
		}
		return []slog.Attr{slog.Any(requestIDFieldKey, requestID)}
	}
}
