package usecase

import (
	"context"

	"github.com/Svaella/app-atension-api/internal/application/dto"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/service"
)

// PredictRisk classifies a minimal questionnaire without storing it.
type PredictRisk struct {
	pipeline pipeline
}

// NewPredictRisk creates a new PredictRisk use case. metrics may be nil.
func NewPredictRisk(
	encoder *service.FeatureEncoder,
	classifier *service.RiskClassifier,
	metrics port.AssessmentMetrics,
) *PredictRisk {
	return &PredictRisk{
		pipeline: pipeline{encoder: encoder, classifier: classifier, metrics: metrics},
	}
}

// Execute validates, encodes and classifies the request.
func (uc *PredictRisk) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	ctx, span := tracer.Start(ctx, "PredictRisk")
	defer span.End()

	answers, err := req.Answers()
	if err != nil {
		return dto.PredictResponse{}, fail(span, err)
	}

	res, err := uc.pipeline.run(ctx, OperationPredict, answers)
	if err != nil {
		return dto.PredictResponse{}, fail(span, err)
	}

	return dto.PredictResponse{
		Riesgo:       res.classification.Tier.String(),
		Probabilidad: res.classification.Probability.Percent().InexactFloat64(),
	}, nil
}
