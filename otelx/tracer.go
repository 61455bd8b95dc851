package otelx

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/amphora/patentsafe-submit/loggerx"
)

type Tracer struct {
	provider   trace.TracerProvider
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	shutdown   func(context.Context) error
}

// New creates the tracer configured by c. Spans of the returned tracer are only exported once
// Shutdown is called or, for the stdout provider, as soon as they end.
func New(ctx context.Context, name string, l *loggerx.Logger, c *Config) (*Tracer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		l = loggerx.NewNop()
	}

	var opt sdktrace.TracerProviderOption
	switch c.Provider {
	case ProviderNone:
		l.Debug(ctx, "no tracer configured, skipping tracing setup")
		return NewNoop(name), nil
	case ProviderStdout:
		exp, err := newStdoutExporter(c)
		if err != nil {
			return nil, err
		}
		opt = sdktrace.WithSyncer(exp)
	case ProviderOTLP:
		exp, err := newOTLPExporter(ctx, c)
		if err != nil {
			return nil, err
		}
		opt = sdktrace.WithBatcher(exp)
		l.Debug(ctx, "otlp tracer configured", attribute.String("server_url", c.OTLP.ServerURL))
	}

	tp := sdktrace.NewTracerProvider(
		opt,
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(c.ServiceName),
		)),
	)

	return &Tracer{
		provider: tp,
		tracer:   tp.Tracer(name),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
		shutdown: tp.Shutdown,
	}, nil
}

// NewNoop returns a tracer that records nothing.
func NewNoop(name string) *Tracer {
	tp := noop.NewTracerProvider()
	return &Tracer{
		provider:   tp,
		tracer:     tp.Tracer(name),
		propagator: propagation.NewCompositeTextMapPropagator(),
		shutdown:   func(context.Context) error { return nil },
	}
}

// IsLoaded returns true if the tracer exports spans.
func (t *Tracer) IsLoaded() bool {
	if t == nil || t.tracer == nil {
		return false
	}
	_, ok := t.provider.(*sdktrace.TracerProvider)
	return ok
}

// Tracer returns the underlying OpenTelemetry tracer.
func (t *Tracer) Tracer() trace.Tracer {
	return t.tracer
}

func (t *Tracer) Provider() trace.TracerProvider {
	return t.provider
}

func (t *Tracer) TextMapPropagator() propagation.TextMapPropagator {
	return t.propagator
}

// Shutdown flushes the spans not exported yet.
func (t *Tracer) Shutdown(ctx context.Context) error {
	return t.shutdown(ctx)
}
