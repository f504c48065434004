package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
)

var (
	// ErrClassification wraps every failure to obtain a usable prediction.
	ErrClassification = errors.New("classification failed")

	// ErrMalformedPrediction marks a predictor output outside [0, 1].
	ErrMalformedPrediction = errors.New("malformed prediction")
)

// Classification is the outcome of classifying one feature vector.
type Classification struct {
	Tier        valueobject.RiskTier
	Probability valueobject.Probability
}

// RiskClassifier maps predictor output onto a risk tier.
type RiskClassifier struct {
	predictor  port.Predictor
	thresholds valueobject.Thresholds
}

// NewRiskClassifier creates a classifier over predictor with the given cut-offs.
func NewRiskClassifier(predictor port.Predictor, thresholds valueobject.Thresholds) (*RiskClassifier, error) {
	if predictor == nil {
		return nil, fmt.Errorf("predictor is required")
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &RiskClassifier{predictor: predictor, thresholds: thresholds}, nil
}

// Thresholds returns the cut-offs in use.
func (c *RiskClassifier) Thresholds() valueobject.Thresholds {
	return c.thresholds
}

// Classify runs the predictor once; failures are not retried.
func (c *RiskClassifier) Classify(ctx context.Context, features model.FeatureVector) (Classification, error) {
	raw, err := c.predictor.Predict(ctx, features)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	p, err := valueobject.NewProbability(raw)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %w: %w", ErrClassification, ErrMalformedPrediction, err)
	}

	return Classification{
		Probability: p,
		Tier:        c.thresholds.Tier(p),
	}, nil
}
