package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
)

// Compile-time interface check.
var _ port.Predictor = (*LogisticModel)(nil)

var (
	// ErrFeatureShape is returned when a vector does not match the model.
	ErrFeatureShape = errors.New("feature vector shape mismatch")

	// ErrInvalidArtifact is returned when a model artifact cannot be used.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)

// ModelArtifact is the exported form of a trained logistic-regression
// classifier. Means and Scales are optional standardization parameters.
type ModelArtifact struct {
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Means        []float64 `json:"means,omitempty"`
	Scales       []float64 `json:"scales,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LogisticModel evaluates a ModelArtifact in process. It is immutable after
// construction and safe for concurrent use.
type LogisticModel struct {
	version      string
	means        []float64
	scales       []float64
	coefficients []float64
	intercept    float64
}

// LoadLogisticModel reads and validates an artifact from path.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact ModelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	return NewLogisticModel(artifact)
}

// NewLogisticModel validates an artifact against the encoder's feature order.
func NewLogisticModel(a ModelArtifact) (*LogisticModel, error) {
	if len(a.Features) != model.FeatureCount {
		return nil, fmt.Errorf("%w: %d features, want %d", ErrInvalidArtifact, len(a.Features), model.FeatureCount)
	}
	for i, name := range a.Features {
		if name != model.FeatureNames[i] {
			return nil, fmt.Errorf("%w: feature %d is %q, want %q", ErrInvalidArtifact, i, name, model.FeatureNames[i])
		}
	}
	if len(a.Coefficients) != model.FeatureCount {
		return nil, fmt.Errorf("%w: %d coefficients, want %d", ErrInvalidArtifact, len(a.Coefficients), model.FeatureCount)
	}
	if (a.Means == nil) != (a.Scales == nil) {
		return nil, fmt.Errorf("%w: means and scales must be given together", ErrInvalidArtifact)
	}
	if a.Means != nil {
		if len(a.Means) != model.FeatureCount || len(a.Scales) != model.FeatureCount {
			return nil, fmt.Errorf("%w: standardization needs %d means and scales", ErrInvalidArtifact, model.FeatureCount)
		}
		for i, s := range a.Scales {
			if s == 0 || math.IsNaN(s) {
				return nil, fmt.Errorf("%w: scale of %s is %v", ErrInvalidArtifact, a.Features[i], s)
			}
		}
	}

	return &LogisticModel{
		version:      a.Version,
		means:        a.Means,
		scales:       a.Scales,
		coefficients: a.Coefficients,
		intercept:    a.Intercept,
	}, nil
}

// Version returns the artifact version string.
func (m *LogisticModel) Version() string {
	return m.version
}

// Predict returns the positive-class probability for features.
func (m *LogisticModel) Predict(ctx context.Context, features model.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := features.CheckShape(len(m.coefficients)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFeatureShape, err)
	}

	z := m.intercept
	for i, x := range features {
		if m.means != nil {
			x = (x - m.means[i]) / m.scales[i]
		}
		z += m.coefficients[i] * x
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
