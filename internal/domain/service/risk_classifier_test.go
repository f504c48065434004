package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/service"
	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
)

type mockPredictor struct {
	predictFunc func(ctx context.Context, features model.FeatureVector) (float64, error)
	calls       int
}

func (m *mockPredictor) Predict(ctx context.Context, features model.FeatureVector) (float64, error) {
	m.calls++
	return m.predictFunc(ctx, features)
}

func fixedPredictor(p float64) *mockPredictor {
	return &mockPredictor{
		predictFunc: func(_ context.Context, _ model.FeatureVector) (float64, error) {
			return p, nil
		},
	}
}

func TestNewRiskClassifier_Validation(t *testing.T) {
	_, err := service.NewRiskClassifier(nil, valueobject.DefaultThresholds)
	assert.Error(t, err)

	_, err = service.NewRiskClassifier(fixedPredictor(0.1), valueobject.Thresholds{Moderate: 0.7, High: 0.3})
	assert.ErrorIs(t, err, valueobject.ErrInvalidThresholds)
}

func TestRiskClassifier_Tiers(t *testing.T) {
	tests := []struct {
		name string
		want valueobject.RiskTier
		p    float64
	}{
		{name: "zero", p: 0, want: valueobject.RiskTierLow},
		{name: "just below moderate", p: 0.3499, want: valueobject.RiskTierLow},
		{name: "moderate boundary", p: 0.35, want: valueobject.RiskTierModerate},
		{name: "just below high", p: 0.6499, want: valueobject.RiskTierModerate},
		{name: "high boundary", p: 0.65, want: valueobject.RiskTierHigh},
		{name: "one", p: 1, want: valueobject.RiskTierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := service.NewRiskClassifier(fixedPredictor(tt.p), valueobject.DefaultThresholds)
			require.NoError(t, err)

			got, err := c.Classify(context.Background(), model.FeatureVector{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Tier)
			assert.Equal(t, tt.p, got.Probability.Fraction())
		})
	}
}

func TestRiskClassifier_LegacyThresholds(t *testing.T) {
	c, err := service.NewRiskClassifier(fixedPredictor(0.7), valueobject.LegacyThresholds)
	require.NoError(t, err)

	got, err := c.Classify(context.Background(), model.FeatureVector{})
	require.NoError(t, err)
	assert.Equal(t, valueobject.RiskTierModerate, got.Tier)
	assert.Equal(t, valueobject.LegacyThresholds, c.Thresholds())
}

func TestRiskClassifier_IsIdempotent(t *testing.T) {
	c, err := service.NewRiskClassifier(fixedPredictor(0.42), valueobject.DefaultThresholds)
	require.NoError(t, err)

	first, err := c.Classify(context.Background(), model.FeatureVector{})
	require.NoError(t, err)
	second, err := c.Classify(context.Background(), model.FeatureVector{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRiskClassifier_PredictorFailureIsNotRetried(t *testing.T) {
	boom := errors.New("model unavailable")
	pred := &mockPredictor{
		predictFunc: func(_ context.Context, _ model.FeatureVector) (float64, error) {
			return 0, boom
		},
	}
	c, err := service.NewRiskClassifier(pred, valueobject.DefaultThresholds)
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), model.FeatureVector{})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrClassification)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, pred.calls)
}

func TestRiskClassifier_MalformedPrediction(t *testing.T) {
	for _, p := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1)} {
		c, err := service.NewRiskClassifier(fixedPredictor(p), valueobject.DefaultThresholds)
		require.NoError(t, err)

		_, err = c.Classify(context.Background(), model.FeatureVector{})
		assert.ErrorIs(t, err, service.ErrClassification, "p=%v", p)
		assert.ErrorIs(t, err, service.ErrMalformedPrediction, "p=%v", p)
	}
}

func TestRiskClassifier_PassesFeaturesThrough(t *testing.T) {
	var seen model.FeatureVector
	pred := &mockPredictor{
		predictFunc: func(_ context.Context, f model.FeatureVector) (float64, error) {
			seen = f
			return 0.2, nil
		},
	}
	c, err := service.NewRiskClassifier(pred, valueobject.DefaultThresholds)
	require.NoError(t, err)

	vec := model.FeatureVector{3, 1, 22.86, 2, 1, 1, 0, 1, 4, 4, 0, 0, 0}
	_, err = c.Classify(context.Background(), vec)
	require.NoError(t, err)
	assert.Equal(t, vec, seen)
}
