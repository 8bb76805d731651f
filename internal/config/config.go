// Package config loads skillpath settings from built-in defaults, an
// optional YAML file and SKILLPATH_* environment variables, in that order
// of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/skillpath/internal/confidence"
	"github.com/abhisek/skillpath/internal/engine"
	"github.com/abhisek/skillpath/internal/logging"
	"github.com/abhisek/skillpath/internal/selector"
	"github.com/abhisek/skillpath/internal/validation"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SKILLPATH_"

	// PathEnvVar names a config file when --config is not given.
	PathEnvVar = "SKILLPATH_CONFIG"
)

// Config is the full skillpath configuration.
type Config struct {
	Engine     EngineConfig       `koanf:"engine"`
	Scoring    ScoringConfig      `koanf:"scoring"`
	Confidence confidence.Options `koanf:"confidence"`
	Catalog    CatalogConfig      `koanf:"catalog"`
	Store      StoreConfig        `koanf:"store"`
	Log        LogConfig          `koanf:"log"`
}

// EngineConfig holds path generation limits.
type EngineConfig struct {
	MaxPrerequisiteDepth int     `koanf:"max_prerequisite_depth" validate:"gte=1,lte=20"`
	DefaultWeeks         float64 `koanf:"default_weeks" validate:"gt=0,lte=520"`
	WeeksPerMonth        float64 `koanf:"weeks_per_month" validate:"gt=0,lte=5"`
}

// ScoringConfig holds the candidate scoring weights.
type ScoringConfig struct {
	Weights selector.Weights `koanf:"weights"`
}

// CatalogConfig points at a catalog file. Empty means the built-in catalog.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// StoreConfig points at the history database. Empty means DefaultDBPath.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	sel := selector.DefaultOptions()
	def := engine.DefaultConfig()
	log := logging.DefaultConfig()
	return &Config{
		Engine: EngineConfig{
			MaxPrerequisiteDepth: sel.MaxDepth,
			DefaultWeeks:         def.DefaultWeeks,
			WeeksPerMonth:        def.WeeksPerMonth,
		},
		Scoring:    ScoringConfig{Weights: sel.Weights},
		Confidence: def.Confidence,
		Log:        LogConfig{Level: log.Level, Format: log.Format},
	}
}

// Load builds the configuration. path is an explicit config file; when
// empty, SKILLPATH_CONFIG and then the user config directory are tried. An
// explicitly named file must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnvVar)
		explicit = path != ""
	}
	if !explicit {
		path = findConfigFile()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envKeys := envKeyMap(k.Keys())
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKeyMap maps SKILLPATH_ENGINE_DEFAULT_WEEKS style names to koanf keys.
// Only keys that exist in the defaults can be overridden; everything else
// under the prefix is ignored.
func envKeyMap(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		m[name] = key
	}
	return m
}

// findConfigFile returns $XDG_CONFIG_HOME/skillpath/config.yaml (or the
// ~/.config equivalent) when it exists.
func findConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(dir, "skillpath", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks field ranges. Weights may all be zero, which selects the
// defaults.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// EngineOptions returns engine settings derived from c, logging to log.
func (c *Config) EngineOptions(log zerolog.Logger) engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Selector = selector.Options{
		Weights:  c.Scoring.Weights,
		MaxDepth: c.Engine.MaxPrerequisiteDepth,
	}
	cfg.Confidence = c.Confidence
	cfg.DefaultWeeks = c.Engine.DefaultWeeks
	cfg.WeeksPerMonth = c.Engine.WeeksPerMonth
	cfg.Logger = log
	return cfg
}

// Logging returns the logging configuration.
func (c *Config) Logging() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Log.Level
	out.Format = c.Log.Format
	return out
}
