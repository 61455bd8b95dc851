package tracex

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/amphora/patentsafe-submit/errorx"
	internaltracex "github.com/amphora/patentsafe-submit/internal/tracex"
	"github.com/amphora/patentsafe-submit/loggerx"
)

// RecoverWithStackTrace recovers from a panic, logs msg with the stack trace and stores an
// INTERNAL error in errp. It must be deferred directly:
//
//	defer tracex.RecoverWithStackTrace(ctx, l, "command panicked", &err)
func RecoverWithStackTrace(ctx context.Context, l *loggerx.Logger, msg string, errp *error) {
	r := recover()
	if r == nil {
		return
	}

	if l != nil {
		l.Error(ctx, msg, StackTraceAttrs(r)...)
	}
	if errp != nil {
		*errp = errorx.InternalErrorf("%s: %s", msg, panicMessage(r))
	}
}

func StackTraceAttrs(recovered any) []attribute.KeyValue {
	out := []attribute.KeyValue{}
	if recovered == nil {
		return out
	}
	out = append(out,
		semconv.ExceptionStacktrace(internaltracex.GetStackTrace(3)),
		semconv.ExceptionMessage(panicMessage(recovered)),
	)
	return out
}

func panicMessage(recovered any) string {
	switch v := recovered.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return "unknown panic"
	}
}

// GetStackTrace returns the stack trace of the caller.
func GetStackTrace() string {
	return internaltracex.GetStackTrace(3)
}
