package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Svaella/app-atension-api/internal/domain/model"
)

var (
	ErrInvalidHeight = errors.New("height must be positive")
	ErrInvalidWeight = errors.New("weight must be positive")
)

var (
	centimetresPerMetre = decimal.NewFromInt(100)
	bmiPlaces           = int32(2)
)

// AgeBracket maps an age in years to the 13 five-year bands used in training:
// 18-24 is 1, 25-29 is 2 and so on up to 75-79 (12); 80-100 is 13.
// Ages outside [18, 100] encode as 0.
func AgeBracket(age int) int {
	switch {
	case age < 18 || age > 100:
		return 0
	case age <= 24:
		return 1
	case age >= 80:
		return 13
	default:
		return (age-25)/5 + 2
	}
}

// BMI returns weight / (height in metres)^2 rounded half away from zero to
// two decimals.
func BMI(weightKg, heightCm float64) (decimal.Decimal, error) {
	if !(heightCm > 0) {
		return decimal.Zero, fmt.Errorf("%w: got %v cm", ErrInvalidHeight, heightCm)
	}
	if !(weightKg > 0) {
		return decimal.Zero, fmt.Errorf("%w: got %v kg", ErrInvalidWeight, weightKg)
	}

	metres := decimal.NewFromFloat(heightCm).Div(centimetresPerMetre)
	return decimal.NewFromFloat(weightKg).Div(metres.Mul(metres)).Round(bmiPlaces), nil
}

// FeatureEncoder turns validated answers into the classifier's input vector.
type FeatureEncoder struct{}

// NewFeatureEncoder creates a FeatureEncoder.
func NewFeatureEncoder() *FeatureEncoder {
	return &FeatureEncoder{}
}

// Encode builds the vector in model.FeatureNames order. It is a pure
// function of its input.
func (e *FeatureEncoder) Encode(in model.AssessmentInput) (model.FeatureVector, error) {
	bmi, err := BMI(in.WeightKg, in.HeightCm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}

	return model.FeatureVector{
		float64(AgeBracket(in.Age)),
		float64(in.Sex),
		bmi.InexactFloat64(),
		float64(in.StressDays),
		float64(in.Fruits),
		float64(in.Vegetables),
		float64(in.Salt),
		float64(in.PhysicalActivity),
		float64(in.Smoking),
		float64(in.Vaping),
		float64(in.Alcohol),
		float64(in.Diabetes),
		float64(in.Cholesterol),
	}, nil
}
