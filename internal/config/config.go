// Package config provides unified configuration loading for hologram.
// Settings come from a YAML file with documented defaults; every tunable
// of the pressure engine and edge discovery is overridable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GMaN1911/hologram-cognitive/internal/discovery"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
)

// LoggingConfig configures hologram's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or
	// "trace". "debug" enables turn tracing to .hologram/turns.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Config contains all hologram configuration settings.
type Config struct {
	// Pressure holds the engine parameters.
	Pressure pressure.Config `json:"pressure" yaml:"pressure"`

	// Discovery holds the edge discovery settings.
	Discovery discovery.Config `json:"discovery" yaml:"discovery"`

	// Logging holds operational logging settings.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	return &Config{
		Pressure:  pressure.DefaultConfig(),
		Discovery: discovery.DefaultConfig(),
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from path, layered over the defaults.
// A missing file is not an error: the defaults are returned. Out-of-range
// values are rejected here, never clamped.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every component's parameter ranges.
func (c *Config) Validate() error {
	if err := c.Pressure.Validate(); err != nil {
		return err
	}
	if err := c.Discovery.Validate(); err != nil {
		return err
	}
	return nil
}
