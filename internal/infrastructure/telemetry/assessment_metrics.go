package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.AssessmentMetrics = (*AssessmentMetrics)(nil)

// AssessmentMetrics records classification outcomes as OpenTelemetry
// instruments, exported as hta_assessments_total and hta_probability.
type AssessmentMetrics struct {
	total       metric.Int64Counter
	probability metric.Float64Histogram
}

// NewAssessmentMetrics registers the instruments on meter.
func NewAssessmentMetrics(meter metric.Meter) (*AssessmentMetrics, error) {
	total, err := meter.Int64Counter("hta_assessments",
		metric.WithDescription("Classified assessments by risk tier and operation."),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessments counter: %w", err)
	}

	probability, err := meter.Float64Histogram("hta_probability",
		metric.WithDescription("Predicted probability of hypertension."),
		metric.WithExplicitBucketBoundaries(0.1, 0.2, 0.35, 0.5, 0.65, 0.75, 0.9, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create probability histogram: %w", err)
	}

	return &AssessmentMetrics{total: total, probability: probability}, nil
}

// RecordClassification counts one classified assessment.
func (m *AssessmentMetrics) RecordClassification(ctx context.Context, operation string, tier valueobject.RiskTier, p valueobject.Probability) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("tier", tier.String()),
	)
	m.total.Add(ctx, 1, attrs)
	m.probability.Record(ctx, p.Fraction(), metric.WithAttributes(attribute.String("operation", operation)))
}
