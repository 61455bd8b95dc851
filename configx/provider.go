package configx

import (
	"context"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"

	"github.com/amphora/patentsafe-submit/errorx"
	"github.com/amphora/patentsafe-submit/loggerx"
)

const (
	Delimiter        = "."
	DefaultEnvPrefix = "PATENTSAFE_"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Provider holds configuration merged from, in increasing priority: base values, config files,
// environment variables, changed command line flags and forced values.
type Provider struct {
	*koanf.Koanf

	files             []string
	flags             *pflag.FlagSet
	envPrefix         string
	disableEnvLoading bool
	baseValues        map[string]interface{}
	forcedValues      map[string]interface{}
	logger            *loggerx.Logger
}

func New(ctx context.Context, modifiers ...OptionModifier) (*Provider, error) {
	p := &Provider{
		Koanf:        koanf.New(Delimiter),
		envPrefix:    DefaultEnvPrefix,
		baseValues:   map[string]interface{}{},
		forcedValues: map[string]interface{}{},
	}

	for _, m := range modifiers {
		m(p)
	}

	if err := p.load(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Provider) load(ctx context.Context) error {
	if err := p.Load(confmap.Provider(p.baseValues, Delimiter), nil); err != nil {
		return errors.WithStack(err)
	}

	for _, path := range p.files {
		parser, err := p.parserFor(path)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return errorx.NotFoundErrorf("config file %q cannot be read", path).WithCause(err)
		}
		if err := p.Load(file.Provider(path), parser); err != nil {
			return errorx.InvalidArgumentErrorf("config file %q is invalid", path).WithCause(err)
		}
		p.debug(ctx, "loaded config file", attribute.String("file", path))
	}

	if !p.disableEnvLoading {
		prefix := p.envPrefix
		if err := p.Load(env.Provider(prefix, Delimiter, func(s string) string {
			return envKey(prefix, s)
		}), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	if p.flags != nil {
		if err := p.Load(posflag.Provider(p.flags, Delimiter, p.Koanf), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	if len(p.forcedValues) > 0 {
		if err := p.Load(confmap.Provider(p.forcedValues, Delimiter), nil); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

func (p *Provider) debug(ctx context.Context, msg string, kvs ...attribute.KeyValue) {
	if p.logger != nil {
		p.logger.Debug(ctx, msg, kvs...)
	}
}

// Unmarshal decodes the merged configuration into v using its koanf struct tags and validates the
// result with its validate struct tags.
func (p *Provider) Unmarshal(v interface{}) error {
	if err := p.UnmarshalWithConf("", v, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return errorx.InvalidArgumentErrorf("configuration cannot be decoded").WithCause(err)
	}
	if err := validate.Struct(v); err != nil {
		return errorx.InvalidArgumentErrorf("configuration is invalid").WithCause(err)
	}
	return nil
}
