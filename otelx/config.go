package otelx

import (
	"io"

	"github.com/amphora/patentsafe-submit/errorx"
)

const (
	ProviderNone   = ""
	ProviderStdout = "stdout"
	ProviderOTLP   = "otlp"

	ProtocolHTTP = "http"
	ProtocolGRPC = "grpc"
)

type OTLPConfig struct {
	// Protocol is http (the default) or grpc.
	Protocol string
	// ServerURL is the host:port of the collector.
	ServerURL string
	Insecure  bool
}

type StdoutConfig struct {
	// Writer receives the exported spans. It defaults to os.Stdout.
	Writer io.Writer
}

type Config struct {
	ServiceName string
	Provider    string
	OTLP        OTLPConfig
	Stdout      StdoutConfig
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderNone, ProviderStdout:
		return nil
	case ProviderOTLP:
		if c.OTLP.ServerURL == "" {
			return errorx.InvalidArgumentErrorf("the otlp tracer needs a server url")
		}
		switch c.OTLP.Protocol {
		case "", ProtocolHTTP, ProtocolGRPC:
			return nil
		default:
			return errorx.InvalidArgumentErrorf("unknown otlp protocol %q, expected one of [http, grpc]", c.OTLP.Protocol)
		}
	default:
		return errorx.InvalidArgumentErrorf("unknown tracer provider %q, expected one of [stdout, otlp]", c.Provider)
	}
}
