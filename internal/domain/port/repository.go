package port

import (
	"context"
	"errors"

	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
)

// ErrAssessmentNotFound is returned by repositories when no record matches.
var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentRepository defines the persistence port for hypertension assessments.
type AssessmentRepository interface {
	// Save inserts a classified assessment, calls MarkPersisted with the
	// generated id and server timestamp, and enqueues the recorded events for
	// delivery. Record and events commit together or not at all.
	Save(ctx context.Context, assessment *model.HypertensionAssessment) error

	// FindByID retrieves a stored record by its identifier.
	FindByID(ctx context.Context, id int64) (*model.AssessmentRecord, error)

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.AssessmentRecord, error)
}

// Predictor is the trained classifier. It returns the probability of the
// positive (hypertension) class for an encoded vector.
type Predictor interface {
	Predict(ctx context.Context, features model.FeatureVector) (float64, error)
}

// AssessmentMetrics records classification outcomes per operation.
type AssessmentMetrics interface {
	RecordClassification(ctx context.Context, operation string, tier valueobject.RiskTier, p valueobject.Probability)
}
