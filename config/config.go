package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Engine       EngineConfig       `json:"engine"`
	Schedule     ScheduleConfig     `json:"schedule"`
	Availability AvailabilityConfig `json:"availability"`
	Cache        CacheConfig        `json:"cache"`
	Server       ServerConfig       `json:"server"`
	Metrics      MetricsConfig      `json:"metrics"`
	Log          LogConfig          `json:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := defaults()
	cfg.SetDefaults()
	return cfg
}

func defaults() *Config {
	return &Config{Metrics: MetricsConfig{PrometheusEnabled: true}}
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	c.Engine.SetDefaults()
	c.Schedule.SetDefaults()
	c.Availability.SetDefaults()
	c.Cache.SetDefaults()
	c.Server.SetDefaults()
	c.Metrics.SetDefaults()
	c.Log.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"engine", c.Engine},
		{"schedule", c.Schedule},
		{"availability", c.Availability},
		{"cache", c.Cache},
		{"server", c.Server},
		{"log", c.Log},
	}
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// Load reads the configuration at path and applies K_ environment
// overrides (K_ENGINE__SESSION_MINUTES=60). When allowMissing is set a path
// that does not exist yields the defaults plus overrides.
func Load(path string, allowMissing bool) (*Config, error) {
	k := koanf.New(".")
	if err := loadFile(k, path, allowMissing); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string, allowMissing bool) error {
	if path == "" {
		if allowMissing {
			return nil
		}
		return errors.New("config path is required")
	}
	if _, err := os.Stat(path); err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format: %s", ext)
	}
	return k.Load(file.Provider(path), parser)
}
