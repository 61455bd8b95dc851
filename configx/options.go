package configx

import (
	"github.com/spf13/pflag"

	"github.com/amphora/patentsafe-submit/loggerx"
)

type (
	OptionModifier func(p *Provider)
)

// WithConfigFiles adds files loaded after the base values. Later files win.
func WithConfigFiles(files ...string) OptionModifier {
	return func(p *Provider) {
		for _, f := range files {
			if f != "" {
				p.files = append(p.files, f)
			}
		}
	}
}

// WithFlags loads the changed flags of the set on top of files and environment.
func WithFlags(flags *pflag.FlagSet) OptionModifier {
	return func(p *Provider) {
		p.flags = flags
	}
}

func WithLogger(l *loggerx.Logger) OptionModifier {
	return func(p *Provider) {
		p.logger = l
	}
}

// WithEnvPrefix sets the prefix of the environment variables read, e.g. PATENTSAFE_ maps
// PATENTSAFE_LOG_LEVEL to the key log-level.
func WithEnvPrefix(prefix string) OptionModifier {
	return func(p *Provider) {
		p.envPrefix = prefix
	}
}

func DisableEnvLoading() OptionModifier {
	return func(p *Provider) {
		p.disableEnvLoading = true
	}
}

// WithValue forces a value, overriding every other source.
func WithValue(key string, value interface{}) OptionModifier {
	return func(p *Provider) {
		p.forcedValues[key] = value
	}
}

func WithValues(values map[string]interface{}) OptionModifier {
	return func(p *Provider) {
		for key, value := range values {
			p.forcedValues[key] = value
		}
	}
}

// WithBaseValues sets the defaults every other source overrides.
func WithBaseValues(values map[string]interface{}) OptionModifier {
	return func(p *Provider) {
		for key, value := range values {
			p.baseValues[key] = value
		}
	}
}
