package otelx

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"google.golang.org/grpc/credentials/insecure"
)

func newStdoutExporter(c *Config) (*stdouttrace.Exporter, error) {
	opts := []stdouttrace.Option{}
	if c.Stdout.Writer != nil {
		opts = append(opts, stdouttrace.WithWriter(c.Stdout.Writer))
	}

	exp, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return exp, nil
}

func newOTLPExporter(ctx context.Context, c *Config) (*otlptrace.Exporter, error) {
	if c.OTLP.Protocol == ProtocolGRPC {
		clientOpts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(c.OTLP.ServerURL),
		}
		if c.OTLP.Insecure {
			clientOpts = append(clientOpts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
		}
		exp, err := otlptracegrpc.New(ctx, clientOpts...)
		return exp, errors.WithStack(err)
	}

	clientOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(c.OTLP.ServerURL),
	}
	if c.OTLP.Insecure {
		clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, clientOpts...)
	return exp, errors.WithStack(err)
}
