package pressure

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"decay rate zero", func(c *Config) { c.DecayRate = 0 }},
		{"decay rate one", func(c *Config) { c.DecayRate = 1 }},
		{"decay rate negative", func(c *Config) { c.DecayRate = -0.5 }},
		{"decay rate above one", func(c *Config) { c.DecayRate = 1.2 }},
		{"budget zero", func(c *Config) { c.TotalBudget = 0 }},
		{"budget negative", func(c *Config) { c.TotalBudget = -3 }},
		{"thresholds inverted", func(c *Config) { c.HotThreshold = 0.2; c.WarmThreshold = 0.5 }},
		{"warm threshold negative", func(c *Config) { c.WarmThreshold = -0.1; c.HotThreshold = 0.5 }},
		{"negative boost", func(c *Config) { c.ActivationBoost = -1 }},
		{"negative propagation floor", func(c *Config) { c.MinPropagationPressure = -1 }},
		{"interval zero", func(c *Config) { c.RedistributeInterval = 0 }},
		{"resurrection threshold zero", func(c *Config) { c.Resurrection.Threshold = 0 }},
		{"resurrection pressure below threshold", func(c *Config) {
			c.Resurrection.Threshold = 0.5
			c.Resurrection.Pressure = 0.4
		}},
		{"resurrection cooldown zero", func(c *Config) { c.Resurrection.Cooldown = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigValidate_ResurrectionDisabledSkipsChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resurrection = ResurrectionConfig{Enabled: false}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled resurrection must not be range-checked, got %v", err)
	}
}
