package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Svaella/app-atension-api/internal/application/usecase"
	"github.com/Svaella/app-atension-api/internal/domain/event"
	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/service"
)

func TestRecordAssessment_Execute(t *testing.T) {
	t.Run("persists and enqueues events", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		metrics := &mockMetrics{}
		uc := usecase.NewRecordAssessment(repo, service.NewFeatureEncoder(), newClassifier(t, fixedPredictor(0.4)), metrics)

		resp, err := uc.Execute(context.Background(), validRecordRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Moderate", resp.Riesgo)
		assert.Equal(t, 40.0, resp.Probabilidad)
		assert.Equal(t, usecase.RecordedMessage, resp.Mensaje)
		require.NotNil(t, repo.saved)
		assert.Equal(t, repo.saved.Reference().String(), resp.Reference)

		quiz, ok := repo.saved.Quiz()
		require.True(t, ok)
		assert.Equal(t, 6, quiz.Score)

		require.Len(t, repo.outbox, 1)
		assert.Equal(t, event.EventTypeAssessmentRecorded, repo.outbox[0].EventType())
		assert.Empty(t, repo.saved.Events(), "events are drained once enqueued")
		assert.Equal(t, usecase.OperationRecord, metrics.recorded[0].operation)
	})

	t.Run("high risk enqueues an alert", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		uc := usecase.NewRecordAssessment(repo, service.NewFeatureEncoder(), newClassifier(t, fixedPredictor(0.9)), nil)

		resp, err := uc.Execute(context.Background(), validRecordRequest())

		require.NoError(t, err)
		assert.Equal(t, "High", resp.Riesgo)
		require.Len(t, repo.outbox, 2)
		assert.Equal(t, event.EventTypeHighRiskDetected, repo.outbox[1].EventType())
		assert.Equal(t, resp.Reference, repo.outbox[1].AggregateID())
	})

	t.Run("missing quiz fields are rejected", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		pred := fixedPredictor(0.4)
		uc := usecase.NewRecordAssessment(repo, service.NewFeatureEncoder(), newClassifier(t, pred), nil)

		req := validRecordRequest()
		req.PuntajeConocimientoHTA = nil
		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Contains(t, err.Error(), "puntaje_conocimiento_hta is required")
		assert.Nil(t, repo.saved)
		assert.Empty(t, pred.seen)
	})

	t.Run("predictor failure stores nothing", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		pred := &mockPredictor{
			predictFunc: func(context.Context, model.FeatureVector) (float64, error) { return 0, errors.New("timeout") },
		}
		uc := usecase.NewRecordAssessment(repo, service.NewFeatureEncoder(), newClassifier(t, pred), nil)

		_, err := uc.Execute(context.Background(), validRecordRequest())

		assert.ErrorIs(t, err, service.ErrClassification)
		assert.Nil(t, repo.saved)
		assert.Empty(t, repo.outbox)
	})

	t.Run("save failure leaves no record and no events", func(t *testing.T) {
		var attempted *model.HypertensionAssessment
		repo := &mockAssessmentRepository{
			saveFunc: func(_ context.Context, a *model.HypertensionAssessment) error {
				attempted = a
				return errors.New("db down")
			},
		}
		uc := usecase.NewRecordAssessment(repo, service.NewFeatureEncoder(), newClassifier(t, fixedPredictor(0.9)), nil)

		resp, err := uc.Execute(context.Background(), validRecordRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save assessment")
		assert.Zero(t, resp.ID)
		assert.Empty(t, repo.outbox)
		require.NotNil(t, attempted)
		assert.Zero(t, attempted.ID())
		assert.Empty(t, attempted.Events())
	})
}
