package valueobject_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
)

func mustProbability(t *testing.T, f float64) valueobject.Probability {
	t.Helper()
	p, err := valueobject.NewProbability(f)
	require.NoError(t, err)
	return p
}

func TestRiskTier_String(t *testing.T) {
	assert.Equal(t, "Low", valueobject.RiskTierLow.String())
	assert.Equal(t, "Moderate", valueobject.RiskTierModerate.String())
	assert.Equal(t, "High", valueobject.RiskTierHigh.String())
}

func TestRiskTier_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskTier
		wantErr  bool
	}{
		{"Low", valueobject.RiskTierLow, false},
		{"Moderate", valueobject.RiskTierModerate, false},
		{"High", valueobject.RiskTierHigh, false},
		{"HIGH", valueobject.RiskTier{}, true},
		{"Alto", valueobject.RiskTier{}, true},
		{"", valueobject.RiskTier{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskTierFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestDefaultThresholds_Tier(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.RiskTier
		p        float64
	}{
		{name: "0 is Low", expected: valueobject.RiskTierLow, p: 0},
		{name: "0.3499 is Low", expected: valueobject.RiskTierLow, p: 0.3499},
		{name: "0.35 is Moderate", expected: valueobject.RiskTierModerate, p: 0.35},
		{name: "0.5 is Moderate", expected: valueobject.RiskTierModerate, p: 0.5},
		{name: "0.6499 is Moderate", expected: valueobject.RiskTierModerate, p: 0.6499},
		{name: "0.65 is High", expected: valueobject.RiskTierHigh, p: 0.65},
		{name: "1 is High", expected: valueobject.RiskTierHigh, p: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valueobject.DefaultThresholds.Tier(mustProbability(t, tt.p))
			assert.True(t, tt.expected.Equal(got), "expected %s for %v, got %s", tt.expected, tt.p, got)
		})
	}
}

func TestLegacyThresholds_Tier(t *testing.T) {
	legacy := valueobject.LegacyThresholds
	assert.Equal(t, valueobject.RiskTierLow, legacy.Tier(mustProbability(t, 0.49)))
	assert.Equal(t, valueobject.RiskTierModerate, legacy.Tier(mustProbability(t, 0.5)))
	assert.Equal(t, valueobject.RiskTierModerate, legacy.Tier(mustProbability(t, 0.74)))
	assert.Equal(t, valueobject.RiskTierHigh, legacy.Tier(mustProbability(t, 0.75)))
}

func TestThresholds_TierIsMonotonic(t *testing.T) {
	prev := 0
	for i := 0; i <= 1000; i++ {
		tier := valueobject.DefaultThresholds.Tier(mustProbability(t, float64(i)/1000))
		require.GreaterOrEqual(t, tier.Rank(), prev, "tier decreased at p=%v", float64(i)/1000)
		prev = tier.Rank()
	}
	assert.Equal(t, 3, prev)
}

func TestThresholds_Validate(t *testing.T) {
	require.NoError(t, valueobject.DefaultThresholds.Validate())
	require.NoError(t, valueobject.LegacyThresholds.Validate())

	assert.ErrorIs(t, valueobject.Thresholds{Moderate: 0.7, High: 0.6}.Validate(), valueobject.ErrInvalidThresholds)
	assert.ErrorIs(t, valueobject.Thresholds{Moderate: 0, High: 0.6}.Validate(), valueobject.ErrInvalidThresholds)
	assert.ErrorIs(t, valueobject.Thresholds{Moderate: 0.3, High: 1.2}.Validate(), valueobject.ErrInvalidThresholds)
}

func TestThresholdsByName(t *testing.T) {
	th, err := valueobject.ThresholdsByName("")
	require.NoError(t, err)
	assert.Equal(t, valueobject.DefaultThresholds, th)

	th, err = valueobject.ThresholdsByName("legacy")
	require.NoError(t, err)
	assert.Equal(t, valueobject.LegacyThresholds, th)

	_, err = valueobject.ThresholdsByName("aggressive")
	assert.ErrorIs(t, err, valueobject.ErrInvalidThresholds)
}

func TestRiskTier_IsZero(t *testing.T) {
	var zero valueobject.RiskTier
	assert.True(t, zero.IsZero())
	assert.Equal(t, 0, zero.Rank())
	assert.False(t, valueobject.RiskTierLow.IsZero())
}

func TestNewProbability(t *testing.T) {
	for _, bad := range []float64{-0.01, 1.0001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := valueobject.NewProbability(bad)
		assert.ErrorIs(t, err, valueobject.ErrProbabilityOutOfRange, "value %v", bad)
	}
}

func TestProbability_Percent(t *testing.T) {
	tests := []struct {
		fraction float64
		expected string
	}{
		{0, "0"},
		{1, "100"},
		{0.72345, "72.35"},
		{0.123449, "12.34"},
		{0.5, "50"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustProbability(t, tt.fraction).Percent().String())
		})
	}
}

func TestProbabilityFromPercent(t *testing.T) {
	p, err := valueobject.ProbabilityFromPercent(decimal.RequireFromString("72.35"))
	require.NoError(t, err)
	assert.InDelta(t, 0.7235, p.Fraction(), 1e-9)

	_, err = valueobject.ProbabilityFromPercent(decimal.NewFromInt(101))
	assert.ErrorIs(t, err, valueobject.ErrProbabilityOutOfRange)
}
