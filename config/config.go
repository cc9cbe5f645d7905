package config

import (
	"fmt"
	"os"

	"github.com/sqldef/ddlgen/ddl"
	"gopkg.in/yaml.v2"
)

// Config is the content of a --config file:
//
//	platforms:
//	  db2:
//	    max_constraint_length: 30
//	    history_suffix: _hist
type Config struct {
	Platforms map[string]ddl.Overrides `yaml:"platforms"`

	overrides map[ddl.Platform]ddl.Overrides
}

// ParseConfig reads a config file. An empty path yields the zero Config.
func ParseConfig(configFile string) (Config, error) {
	if configFile == "" {
		return Config{}, nil
	}

	buf, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, err
	}
	return ParseConfigBytes(buf)
}

func ParseConfigBytes(buf []byte) (Config, error) {
	var config Config
	if err := yaml.UnmarshalStrict(buf, &config); err != nil {
		return Config{}, fmt.Errorf("%s: %w", err, ddl.ErrInvalidConfiguration)
	}

	config.overrides = map[ddl.Platform]ddl.Overrides{}
	for name, overrides := range config.Platforms {
		platform, err := ddl.ParsePlatform(name)
		if err != nil {
			return Config{}, err
		}
		if _, ok := config.overrides[platform]; ok {
			return Config{}, fmt.Errorf("platform %s is configured more than once: %w", platform, ddl.ErrInvalidConfiguration)
		}
		if err := overrides.Validate(); err != nil {
			return Config{}, fmt.Errorf("platform %s: %w", platform, err)
		}
		config.overrides[platform] = overrides
	}
	return config, nil
}

// Overrides returns the overrides configured for p, if any.
func (c Config) Overrides(p ddl.Platform) ddl.Overrides {
	return c.overrides[p]
}

// Dialect builds the dialect of p with its configured overrides.
func (c Config) Dialect(p ddl.Platform) (*ddl.Dialect, error) {
	return ddl.New(p, c.Overrides(p))
}
