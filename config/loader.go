/* loader.go
 * Loads the configuration from defaults, an optional YAML file and POOL_* environment variables
 */

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. POOL_MONGO_URI
const EnvPrefix = "POOL_"

// ConfigFileEnv names the variable holding the optional YAML file path
const ConfigFileEnv = "POOL_CONFIG"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file in the working directory, if present (only fills the environment)
//  3. YAML file if POOL_CONFIG is set
//  4. env (prefix POOL_)
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// POOL_MONGO_URI -> mongo_uri. Underscores are kept to match the koanf tags.
	// POOL_REQUIRED_GAMBLERS is a comma separated list
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key string, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "required_gamblers" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy. Decoding into a populated slice would merge element-wise, so the catalogue starts empty
	cfg := *base
	cfg.Tournaments = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	// No catalogue in the file means the default one
	if len(cfg.Tournaments) == 0 {
		cfg.Tournaments = defaultTournaments()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
