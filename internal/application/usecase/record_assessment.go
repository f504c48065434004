package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Svaella/app-atension-api/internal/application/dto"
	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/service"
)

// RecordedMessage is returned to callers once an assessment is stored.
const RecordedMessage = "Evaluación registrada correctamente"

// RecordAssessment classifies a complete questionnaire and stores it together
// with its domain events. Delivery to the broker happens asynchronously from
// the outbox.
type RecordAssessment struct {
	repo     port.AssessmentRepository
	pipeline pipeline
}

// NewRecordAssessment creates a new RecordAssessment use case. metrics may be nil.
func NewRecordAssessment(
	repo port.AssessmentRepository,
	encoder *service.FeatureEncoder,
	classifier *service.RiskClassifier,
	metrics port.AssessmentMetrics,
) *RecordAssessment {
	return &RecordAssessment{
		repo:     repo,
		pipeline: pipeline{encoder: encoder, classifier: classifier, metrics: metrics},
	}
}

// Execute runs the pipeline and persists the record. Either the record and its
// events are both stored or the call fails with nothing stored.
func (uc *RecordAssessment) Execute(ctx context.Context, req dto.RecordAssessmentRequest) (dto.RecordAssessmentResponse, error) {
	ctx, span := tracer.Start(ctx, "RecordAssessment")
	defer span.End()

	answers, err := req.Answers()
	if err != nil {
		return dto.RecordAssessmentResponse{}, fail(span, err)
	}
	quiz, err := req.Quiz()
	if err != nil {
		return dto.RecordAssessmentResponse{}, fail(span, fmt.Errorf("failed to validate quiz: %w", err))
	}

	res, err := uc.pipeline.run(ctx, OperationRecord, answers)
	if err != nil {
		return dto.RecordAssessmentResponse{}, fail(span, err)
	}

	// 1. Build the aggregate and attach the result.
	assessment, err := model.NewHypertensionAssessment(res.input, res.features, &quiz)
	if err != nil {
		return dto.RecordAssessmentResponse{}, fail(span, fmt.Errorf("failed to create assessment: %w", err))
	}
	if err := assessment.Classify(res.classification.Probability, res.classification.Tier); err != nil {
		return dto.RecordAssessmentResponse{}, fail(span, fmt.Errorf("failed to classify assessment: %w", err))
	}

	// 2. Persist the assessment and enqueue its events.
	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.RecordAssessmentResponse{}, fail(span, fmt.Errorf("failed to save assessment: %w", err))
	}
	span.SetAttributes(
		attribute.Int64("hta.assessment_id", assessment.ID()),
		attribute.Int("hta.events_enqueued", len(assessment.ClearEvents())),
	)

	return dto.RecordAssessmentResponse{
		ID:           assessment.ID(),
		Reference:    assessment.Reference().String(),
		Riesgo:       assessment.RiskTier().String(),
		Probabilidad: assessment.Probability().Percent().InexactFloat64(),
		Mensaje:      RecordedMessage,
	}, nil
}
