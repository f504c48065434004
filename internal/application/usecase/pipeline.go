package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/service"
)

const (
	OperationPredict = "predict"
	OperationRecord  = "record"
)

var tracer = otel.Tracer("github.com/Svaella/app-atension-api/internal/application/usecase")

// pipeline is the validate, encode and classify sequence shared by the
// assessment use cases.
type pipeline struct {
	encoder    *service.FeatureEncoder
	classifier *service.RiskClassifier
	metrics    port.AssessmentMetrics
}

type pipelineResult struct {
	classification service.Classification
	input          model.AssessmentInput
	features       model.FeatureVector
}

func (p pipeline) run(ctx context.Context, operation string, answers model.Answers) (pipelineResult, error) {
	input, err := model.NewAssessmentInput(answers)
	if err != nil {
		return pipelineResult{}, fmt.Errorf("failed to validate input: %w", err)
	}

	features, err := p.encoder.Encode(input)
	if err != nil {
		return pipelineResult{}, fmt.Errorf("failed to encode features: %w", err)
	}

	classification, err := p.classifier.Classify(ctx, features)
	if err != nil {
		return pipelineResult{}, fmt.Errorf("failed to classify: %w", err)
	}

	if p.metrics != nil {
		p.metrics.RecordClassification(ctx, operation, classification.Tier, classification.Probability)
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("hta.risk_tier", classification.Tier.String()),
		attribute.Float64("hta.probability", classification.Probability.Fraction()),
	)

	return pipelineResult{input: input, features: features, classification: classification}, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
