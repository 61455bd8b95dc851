package tracex

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/amphora/patentsafe-submit/loggerx"
	"github.com/amphora/patentsafe-submit/otelx"
)

const ComponentNameSeparator = "."

func ComponentName(packageName, structName string) string {
	return packageName + ComponentNameSeparator + structName
}

/*
Instrument starts a span named after the component and returns a logger tagged with the same
name. `span.End()` must be called once the work is done.

	const clientComponentName = "patentsafe.Client"

	func (c *Client) post(ctx context.Context) error {
		ctx, span, l := tracex.Instrument(ctx, c.logger, c.tracer, clientComponentName, "post")
		defer span.End()
	}
*/
func Instrument(ctx context.Context, l *loggerx.Logger, t *otelx.Tracer, componentName string, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span, *loggerx.Logger) {
	fullComponentName := ComponentName(componentName, name)
	ctx, span := t.Tracer().Start(ctx, fullComponentName, opts...)
	return ctx, span, l.WithFields(attribute.String("component", fullComponentName))
}
