package configx

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"

	"github.com/amphora/patentsafe-submit/errorx"
)

func (p *Provider) parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".env":
		return &dotenvParser{prefix: p.envPrefix}, nil
	default:
		return nil, errorx.InvalidArgumentErrorf("unsupported config file extension %q for %q, expected one of [.yaml, .yml, .toml, .json, .env]", ext, path)
	}
}

// envKey maps PREFIX_LOG_LEVEL to log-level. Variables without the prefix map to "".
func envKey(prefix, name string) string {
	if !strings.HasPrefix(name, prefix) {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, prefix)), "_", "-")
}

// dotenvParser reads KEY=value files holding the same variables as the environment.
type dotenvParser struct {
	prefix string
}

func (d *dotenvParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	vars, err := godotenv.UnmarshalBytes(b)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		if key := envKey(d.prefix, name); key != "" {
			out[key] = value
		}
	}
	return out, nil
}

func (d *dotenvParser) Marshal(map[string]interface{}) ([]byte, error) {
	return nil, errorx.InternalErrorf("writing env files is not supported")
}
