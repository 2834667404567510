// Package config loads the YAML configuration shared by the dcs commands.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration
type Config struct {
	World  WorldConfig  `yaml:"world"`
	Output OutputConfig `yaml:"output"`
}

// WorldConfig selects where predicate tables come from
type WorldConfig struct {
	Geobase        string `yaml:"geobase"`     // gazetteer facts file
	BadgerPath     string `yaml:"badger_path"` // world DB built by build-worlddb
	MajorThreshold int64  `yaml:"major_threshold"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Color   string `yaml:"color"` // auto, always, never
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"` // table, plain, zap
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Geobase:        "geobase",
			MajorThreshold: 500000,
		},
		Output: OutputConfig{
			Color:  "auto",
			Format: "table",
		},
	}
}

// Load reads path, then applies .env and DCS_* environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DCS_GEOBASE"); v != "" {
		c.World.Geobase = v
	}
	if v := os.Getenv("DCS_DB"); v != "" {
		c.World.BadgerPath = v
	}
	if v := os.Getenv("DCS_MAJOR_THRESHOLD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DCS_MAJOR_THRESHOLD %q: %w", v, err)
		}
		c.World.MajorThreshold = n
	}
	if v := os.Getenv("DCS_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("DCS_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DCS_VERBOSE %q: %w", v, err)
		}
		c.Output.Verbose = b
	}
	if v := os.Getenv("DCS_FORMAT"); v != "" {
		c.Output.Format = v
	}
	return nil
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	switch c.Output.Format {
	case "table", "plain", "zap":
	default:
		return fmt.Errorf("output.format must be table, plain or zap, got %q", c.Output.Format)
	}
	if c.World.MajorThreshold < 0 {
		return fmt.Errorf("world.major_threshold must not be negative")
	}
	return nil
}
