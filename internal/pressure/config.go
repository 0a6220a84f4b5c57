// Package pressure implements the attention-pressure engine: a weighted
// diffusion-and-leak model over the document graph. Each node carries a
// non-negative scalar that is boosted on activation, pushed one hop along
// outgoing edges per turn, decayed, and periodically rescaled so the
// system-wide total matches a fixed budget.
package pressure

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure modes.
var (
	// ErrInvalidNode is returned when an operation references a document
	// id that is not a node in the current graph.
	ErrInvalidNode = errors.New("unknown document id")

	// ErrInvalidConfig is returned when a configuration parameter is out
	// of range. Invalid values are rejected at construction, never
	// silently clamped.
	ErrInvalidConfig = errors.New("invalid pressure configuration")
)

// Tier is a coarse relevance bucket derived from raw pressure.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

// ResurrectionConfig controls the wrap-around behavior for nodes whose
// pressure decays toward zero.
type ResurrectionConfig struct {
	// Enabled turns resurrection on. Default: true.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Threshold is the pressure floor that triggers resurrection.
	// Default: 0.01.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Pressure is the value a node is reset to when resurrected.
	// Default: 0.8.
	Pressure float64 `json:"pressure" yaml:"pressure"`

	// Cooldown is the minimum number of turns between resurrections of
	// the same node. While in cooldown the node is clamped at Threshold
	// instead of decaying further. Default: 100.
	Cooldown int `json:"cooldown" yaml:"cooldown"`
}

// Config holds the immutable-per-session pressure parameters.
type Config struct {
	// DecayRate multiplies every node's pressure each turn. Must be in
	// the open interval (0, 1). Default: 0.9.
	DecayRate float64 `json:"decay_rate" yaml:"decay_rate"`

	// TotalBudget is the conserved system-wide pressure. The sum of all
	// node pressures equals this immediately after each redistribution.
	// Must be positive. Default: 10.0.
	TotalBudget float64 `json:"total_budget" yaml:"total_budget"`

	// HotThreshold and WarmThreshold derive the tier from raw pressure:
	// >= HotThreshold is hot, >= WarmThreshold is warm, below is cold.
	// Defaults: 0.7 and 0.3.
	HotThreshold  float64 `json:"hot_threshold" yaml:"hot_threshold"`
	WarmThreshold float64 `json:"warm_threshold" yaml:"warm_threshold"`

	// ActivationBoost is the default pressure added per activation event
	// when the caller does not supply an explicit amount. Default: 0.4.
	ActivationBoost float64 `json:"activation_boost" yaml:"activation_boost"`

	// MinPropagationPressure is the negligible-pressure cutoff: nodes at
	// or below it do not push pressure to neighbors. Default: 1e-6.
	MinPropagationPressure float64 `json:"min_propagation_pressure" yaml:"min_propagation_pressure"`

	// ConservativeActivation drains each activation boost evenly from
	// the non-activated nodes, keeping the total constant at activation
	// time instead of waiting for the next redistribution. Default: false.
	ConservativeActivation bool `json:"conservative_activation" yaml:"conservative_activation"`

	// RedistributeInterval is the cadence, in turns, at which the caller
	// should invoke Redistribute. The engine does not self-schedule;
	// skipping the call lets floating-point drift accumulate unbounded.
	// Default: 10.
	RedistributeInterval int `json:"redistribute_interval" yaml:"redistribute_interval"`

	// Resurrection configures the near-zero wrap-around.
	Resurrection ResurrectionConfig `json:"resurrection" yaml:"resurrection"`
}

// DefaultConfig returns the default pressure configuration.
func DefaultConfig() Config {
	return Config{
		DecayRate:              0.9,
		TotalBudget:            10.0,
		HotThreshold:           0.7,
		WarmThreshold:          0.3,
		ActivationBoost:        0.4,
		MinPropagationPressure: 1e-6,
		RedistributeInterval:   10,
		Resurrection: ResurrectionConfig{
			Enabled:   true,
			Threshold: 0.01,
			Pressure:  0.8,
			Cooldown:  100,
		},
	}
}

// Validate checks every parameter range. It returns an error wrapping
// ErrInvalidConfig on the first violation.
func (c Config) Validate() error {
	if c.DecayRate <= 0 || c.DecayRate >= 1 {
		return fmt.Errorf("%w: decay_rate must be in (0, 1), got %g", ErrInvalidConfig, c.DecayRate)
	}
	if c.TotalBudget <= 0 {
		return fmt.Errorf("%w: total_budget must be positive, got %g", ErrInvalidConfig, c.TotalBudget)
	}
	if c.HotThreshold <= c.WarmThreshold {
		return fmt.Errorf("%w: hot_threshold %g must exceed warm_threshold %g",
			ErrInvalidConfig, c.HotThreshold, c.WarmThreshold)
	}
	if c.WarmThreshold < 0 {
		return fmt.Errorf("%w: warm_threshold must be non-negative, got %g", ErrInvalidConfig, c.WarmThreshold)
	}
	if c.ActivationBoost < 0 {
		return fmt.Errorf("%w: activation_boost must be non-negative, got %g", ErrInvalidConfig, c.ActivationBoost)
	}
	if c.MinPropagationPressure < 0 {
		return fmt.Errorf("%w: min_propagation_pressure must be non-negative, got %g",
			ErrInvalidConfig, c.MinPropagationPressure)
	}
	if c.RedistributeInterval < 1 {
		return fmt.Errorf("%w: redistribute_interval must be >= 1, got %d",
			ErrInvalidConfig, c.RedistributeInterval)
	}
	if c.Resurrection.Enabled {
		if c.Resurrection.Threshold <= 0 {
			return fmt.Errorf("%w: resurrection threshold must be positive, got %g",
				ErrInvalidConfig, c.Resurrection.Threshold)
		}
		if c.Resurrection.Pressure <= c.Resurrection.Threshold {
			return fmt.Errorf("%w: resurrection pressure %g must exceed threshold %g",
				ErrInvalidConfig, c.Resurrection.Pressure, c.Resurrection.Threshold)
		}
		if c.Resurrection.Cooldown < 1 {
			return fmt.Errorf("%w: resurrection cooldown must be >= 1, got %d",
				ErrInvalidConfig, c.Resurrection.Cooldown)
		}
	}
	return nil
}

// TierFor derives the tier for a raw pressure value. The tier is a pure
// function of the current pressure; it is never stored, so it cannot
// disagree with the raw value.
func (c Config) TierFor(pressure float64) Tier {
	switch {
	case pressure >= c.HotThreshold:
		return TierHot
	case pressure >= c.WarmThreshold:
		return TierWarm
	default:
		return TierCold
	}
}
