package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Svaella/app-atension-api/internal/application/dto"
	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/service"
	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
	"github.com/Svaella/app-atension-api/pkg/events"
)

// --- Mock implementations ---

// mockAssessmentRepository mimics the transactional save: the assessment is
// only marked and its events only enqueued when Save succeeds.
type mockAssessmentRepository struct {
	saved          *model.HypertensionAssessment
	outbox         []events.DomainEvent
	saveFunc       func(ctx context.Context, a *model.HypertensionAssessment) error
	findByIDFunc   func(ctx context.Context, id int64) (*model.AssessmentRecord, error)
	listRecentFunc func(ctx context.Context, limit int) ([]model.AssessmentRecord, error)
	nextID         int64
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a *model.HypertensionAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.nextID++
	if err := a.MarkPersisted(m.nextID, time.Now()); err != nil {
		return err
	}
	m.saved = a
	m.outbox = append(m.outbox, a.Events()...)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id int64) (*model.AssessmentRecord, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, port.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) ListRecent(ctx context.Context, limit int) ([]model.AssessmentRecord, error) {
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, limit)
	}
	return nil, nil
}

type mockPredictor struct {
	predictFunc func(ctx context.Context, f model.FeatureVector) (float64, error)
	seen        []model.FeatureVector
}

func (m *mockPredictor) Predict(ctx context.Context, f model.FeatureVector) (float64, error) {
	m.seen = append(m.seen, f)
	return m.predictFunc(ctx, f)
}

func fixedPredictor(p float64) *mockPredictor {
	return &mockPredictor{
		predictFunc: func(context.Context, model.FeatureVector) (float64, error) { return p, nil },
	}
}

type recordedClassification struct {
	operation string
	tier      valueobject.RiskTier
}

type mockMetrics struct {
	recorded []recordedClassification
}

func (m *mockMetrics) RecordClassification(_ context.Context, operation string, tier valueobject.RiskTier, _ valueobject.Probability) {
	m.recorded = append(m.recorded, recordedClassification{operation: operation, tier: tier})
}

// --- Fixtures ---

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func validPredictRequest() dto.PredictRequest {
	return dto.PredictRequest{
		Sexo:       intPtr(1),
		Edad:       intPtr(30),
		Peso:       floatPtr(70),
		Altura:     floatPtr(175),
		Frutas:     intPtr(1),
		Vegetales:  intPtr(1),
		Sal:        intPtr(0),
		Alcohol:    intPtr(0),
		Tabaco:     intPtr(4),
		Vapeo:      intPtr(4),
		EstresDias: intPtr(2),
		Actividad:  intPtr(1),
		Colesterol: intPtr(0),
		Diabetes:   intPtr(0),
	}
}

func validRecordRequest() dto.RecordAssessmentRequest {
	return dto.RecordAssessmentRequest{
		PredictRequest:              validPredictRequest(),
		HTADiagnosticadaPreviamente: intPtr(0),
		PuntajeConocimientoHTA:      intPtr(6),
		RespuestasHTA:               map[string]any{"p1": "si"},
	}
}

func newClassifier(t *testing.T, pred port.Predictor) *service.RiskClassifier {
	t.Helper()
	c, err := service.NewRiskClassifier(pred, valueobject.DefaultThresholds)
	require.NoError(t, err)
	return c
}
