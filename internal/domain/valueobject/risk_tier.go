package valueobject

import (
	"errors"
	"fmt"
)

// RiskTier is an immutable value object representing the hypertension risk bucket.
type RiskTier struct {
	value string
}

var (
	RiskTierLow      = RiskTier{value: "Low"}
	RiskTierModerate = RiskTier{value: "Moderate"}
	RiskTierHigh     = RiskTier{value: "High"}
)

// ErrInvalidThresholds is returned for threshold pairs that do not split [0,1]
// into three ordered bands.
var ErrInvalidThresholds = errors.New("invalid risk thresholds")

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "Low":
		return RiskTierLow, nil
	case "Moderate":
		return RiskTierModerate, nil
	case "High":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %q", s)
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// Rank orders tiers: Low=1, Moderate=2, High=3. The zero value ranks 0.
func (r RiskTier) Rank() int {
	switch r.value {
	case "Low":
		return 1
	case "Moderate":
		return 2
	case "High":
		return 3
	default:
		return 0
	}
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}

// Thresholds are the inclusive lower bounds, as probability fractions, of the
// Moderate and High tiers.
type Thresholds struct {
	Moderate float64
	High     float64
}

var (
	// DefaultThresholds is the policy the current model was calibrated for.
	DefaultThresholds = Thresholds{Moderate: 0.35, High: 0.65}
	// LegacyThresholds is the policy of the first deployed model.
	LegacyThresholds = Thresholds{Moderate: 0.50, High: 0.75}
)

// ThresholdsByName resolves a named policy ("default" or "legacy").
func ThresholdsByName(name string) (Thresholds, error) {
	switch name {
	case "", "default":
		return DefaultThresholds, nil
	case "legacy":
		return LegacyThresholds, nil
	default:
		return Thresholds{}, fmt.Errorf("%w: unknown policy %q", ErrInvalidThresholds, name)
	}
}

// Validate checks 0 < Moderate < High <= 1.
func (t Thresholds) Validate() error {
	if !(t.Moderate > 0 && t.Moderate < t.High && t.High <= 1) {
		return fmt.Errorf("%w: moderate=%v high=%v", ErrInvalidThresholds, t.Moderate, t.High)
	}
	return nil
}

// Tier buckets a probability.
func (t Thresholds) Tier(p Probability) RiskTier {
	switch f := p.Fraction(); {
	case f >= t.High:
		return RiskTierHigh
	case f >= t.Moderate:
		return RiskTierModerate
	default:
		return RiskTierLow
	}
}
