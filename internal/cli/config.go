package cli

import (
	"context"
	"io"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/spf13/pflag"

	"github.com/amphora/patentsafe-submit/configx"
	"github.com/amphora/patentsafe-submit/errorx"
	"github.com/amphora/patentsafe-submit/httpx"
	"github.com/amphora/patentsafe-submit/loggerx"
	"github.com/amphora/patentsafe-submit/otelx"
	"github.com/amphora/patentsafe-submit/patentsafe"
)

const (
	DefaultUserAgent = "patentsafe-submit/1"
	DefaultTimeout   = 60 * time.Second
	DefaultLogLevel  = "warn"

	tracerName = "patentsafe-submit"
)

const (
	KeyConfig            = "config"
	KeyScheme            = "scheme"
	KeyUserAgent         = "user-agent"
	KeyTimeout           = "timeout"
	KeyInsecure          = "insecure"
	KeyMaxAttachmentSize = "max-attachment-size"
	KeyLogLevel          = "log-level"
	KeyLogFormat         = "log-format"
	KeyVerbose           = "verbose"
	KeyTraceProvider     = "trace-provider"
	KeyTraceEndpoint     = "trace-endpoint"
	KeyTraceProtocol     = "trace-protocol"
	KeyTraceInsecure     = "trace-insecure"
)

// Config holds the settings shared by the commands. Each key can come from a config file, a
// PATENTSAFE_ environment variable or a flag, in increasing priority.
type Config struct {
	Scheme            string        `koanf:"scheme" validate:"required,oneof=http https"`
	UserAgent         string        `koanf:"user-agent"`
	Timeout           time.Duration `koanf:"timeout" validate:"gte=0"`
	Insecure          bool          `koanf:"insecure"`
	MaxAttachmentSize string        `koanf:"max-attachment-size"`
	LogLevel          string        `koanf:"log-level"`
	LogFormat         string        `koanf:"log-format" validate:"oneof=text json"`
	Verbose           int           `koanf:"verbose" validate:"gte=0"`
	TraceProvider     string        `koanf:"trace-provider"`
	TraceEndpoint     string        `koanf:"trace-endpoint"`
	TraceProtocol     string        `koanf:"trace-protocol"`
	TraceInsecure     bool          `koanf:"trace-insecure"`
}

func defaultValues() map[string]interface{} {
	return map[string]interface{}{
		KeyScheme:            patentsafe.DefaultScheme,
		KeyUserAgent:         DefaultUserAgent,
		KeyTimeout:           DefaultTimeout.String(),
		KeyInsecure:          false,
		KeyMaxAttachmentSize: "",
		KeyLogLevel:          DefaultLogLevel,
		KeyLogFormat:         string(loggerx.FormatText),
		KeyVerbose:           0,
		KeyTraceProvider:     otelx.ProviderNone,
		KeyTraceEndpoint:     "",
		KeyTraceProtocol:     otelx.ProtocolHTTP,
		KeyTraceInsecure:     false,
	}
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String(KeyConfig, "", "read settings from a yaml, toml or json file")
	flags.String(KeyScheme, patentsafe.DefaultScheme, "scheme of the submission URL")
	flags.String(KeyUserAgent, DefaultUserAgent, "User-Agent header sent to PatentSafe")
	flags.Duration(KeyTimeout, DefaultTimeout, "give up waiting for PatentSafe after this long, 0 waits forever")
	flags.Bool(KeyInsecure, false, "do not verify the TLS certificate of the server")
	flags.String(KeyMaxAttachmentSize, "", "refuse files larger than this size, e.g. 20MB")
	flags.String(KeyLogLevel, DefaultLogLevel, "one of debug, info, warn, error")
	flags.String(KeyLogFormat, string(loggerx.FormatText), "one of text, json")
	flags.CountP(KeyVerbose, "v", "log more, repeat for debug output")
	flags.String(KeyTraceProvider, otelx.ProviderNone, "export traces to stdout (written to stderr) or otlp")
	flags.String(KeyTraceEndpoint, "", "host:port of the otlp collector")
	flags.String(KeyTraceProtocol, otelx.ProtocolHTTP, "otlp protocol, http or grpc")
	flags.Bool(KeyTraceInsecure, false, "send traces to the otlp collector without TLS")
}

// flagLogger logs with the levels given on the command line only. It reports what happens while
// the config is loaded, before the full Config is known.
func flagLogger(flags *pflag.FlagSet, w io.Writer) *loggerx.Logger {
	levelName, _ := flags.GetString(KeyLogLevel)
	formatName, _ := flags.GetString(KeyLogFormat)
	verbose, _ := flags.GetCount(KeyVerbose)

	level, err := loggerx.ParseLevel(levelName)
	if err != nil {
		return loggerx.NewNop()
	}
	format, err := loggerx.ParseFormat(formatName)
	if err != nil {
		return loggerx.NewNop()
	}
	return loggerx.New(w, loggerx.LevelFromVerbosity(level, verbose), format)
}

func loadConfig(ctx context.Context, flags *pflag.FlagSet, logger *loggerx.Logger) (*Config, error) {
	configFile, err := flags.GetString(KeyConfig)
	if err != nil {
		return nil, errorx.InternalErrorf("config flag is not defined").WithCause(err)
	}

	p, err := configx.New(ctx,
		configx.WithBaseValues(defaultValues()),
		configx.WithConfigFiles(configFile),
		configx.WithFlags(flags),
		configx.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := p.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Logger(w io.Writer) (*loggerx.Logger, error) {
	level, err := loggerx.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := loggerx.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	return loggerx.New(w, loggerx.LevelFromVerbosity(level, c.Verbose), format), nil
}

// AttachmentLimit returns the parsed max-attachment-size, zero when unset.
func (c *Config) AttachmentLimit() (bytesize.ByteSize, error) {
	if c.MaxAttachmentSize == "" {
		return 0, nil
	}
	size, err := bytesize.Parse(c.MaxAttachmentSize)
	if err != nil {
		return 0, errorx.InvalidArgumentErrorf("invalid %s %q", KeyMaxAttachmentSize, c.MaxAttachmentSize).WithCause(err)
	}
	return size, nil
}

// Tracer creates the tracer of the command. Spans exported to stdout are written to w so that
// stdout only carries the answer of PatentSafe.
func (c *Config) Tracer(ctx context.Context, logger *loggerx.Logger, w io.Writer) (*otelx.Tracer, error) {
	return otelx.New(ctx, tracerName, logger, &otelx.Config{
		ServiceName: tracerName,
		Provider:    c.TraceProvider,
		OTLP: otelx.OTLPConfig{
			Protocol:  c.TraceProtocol,
			ServerURL: c.TraceEndpoint,
			Insecure:  c.TraceInsecure,
		},
		Stdout: otelx.StdoutConfig{Writer: w},
	})
}

func (c *Config) Client(logger *loggerx.Logger, tracer *otelx.Tracer) (*patentsafe.Client, error) {
	limit, err := c.AttachmentLimit()
	if err != nil {
		return nil, err
	}

	httpOptions := []httpx.Option{
		httpx.WithTimeout(c.Timeout),
		httpx.WithUserAgent(c.UserAgent),
	}
	if c.Insecure {
		httpOptions = append(httpOptions, httpx.WithSkipTLSVerification())
	}
	if tracer.IsLoaded() {
		httpOptions = append(httpOptions, httpx.WithClientTrace())
	}

	return patentsafe.NewClient(
		patentsafe.WithHTTPClient(httpx.NewClientWithOptions(httpOptions...)),
		patentsafe.WithScheme(c.Scheme),
		patentsafe.WithMaxAttachmentSize(limit),
		patentsafe.WithLogger(logger),
		patentsafe.WithTracer(tracer),
	), nil
}
