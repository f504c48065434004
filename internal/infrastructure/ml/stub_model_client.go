package ml

import (
	"context"
	"log/slog"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
)

// Compile-time interface check.
var _ port.Predictor = (*StubModelClient)(nil)

// StubModelClient implements port.Predictor with a fixed probability, for
// local development without a model artifact.
type StubModelClient struct {
	logger      *slog.Logger
	probability float64
}

// NewStubModelClient creates a stub that always answers probability.
func NewStubModelClient(probability float64, logger *slog.Logger) *StubModelClient {
	return &StubModelClient{probability: probability, logger: logger}
}

// Predict returns the configured probability.
func (c *StubModelClient) Predict(ctx context.Context, features model.FeatureVector) (float64, error) {
	c.logger.DebugContext(ctx, "stub model prediction requested",
		slog.Int("feature_count", len(features)),
	)
	return c.probability, nil
}
