package valueobject

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrProbabilityOutOfRange is returned for NaN, infinite or out-of-[0,1] values.
var ErrProbabilityOutOfRange = errors.New("probability out of range")

var hundred = decimal.NewFromInt(100)

// Probability is a model output in [0,1].
type Probability struct {
	fraction float64
}

// NewProbability validates a fraction.
func NewProbability(fraction float64) (Probability, error) {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) || fraction < 0 || fraction > 1 {
		return Probability{}, fmt.Errorf("%w: %v", ErrProbabilityOutOfRange, fraction)
	}
	return Probability{fraction: fraction}, nil
}

// ProbabilityFromPercent rebuilds a Probability from a stored percentage.
func ProbabilityFromPercent(percent decimal.Decimal) (Probability, error) {
	return NewProbability(percent.Div(hundred).InexactFloat64())
}

// Fraction returns the raw value in [0,1].
func (p Probability) Fraction() float64 {
	return p.fraction
}

// Percent returns the probability as a 0-100 percentage rounded to two decimals.
func (p Probability) Percent() decimal.Decimal {
	return decimal.NewFromFloat(p.fraction).Mul(hundred).Round(2)
}
