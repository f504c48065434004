package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssessmentRecord is a stored assessment. Categorical answers are kept as
// their Spanish labels; records are written once and never updated.
type AssessmentRecord struct {
	CreatedAt           time.Time
	QuizAnswers         map[string]any
	PreviouslyDiagnosed *string
	QuizScore           *int
	BMI                 decimal.Decimal
	Probability         decimal.Decimal
	Sex                 string
	Fruits              string
	Vegetables          string
	Salt                string
	Alcohol             string
	Smoking             string
	Vaping              string
	PhysicalActivity    string
	Cholesterol         string
	Diabetes            string
	RiskTier            string
	WeightKg            float64
	HeightCm            float64
	ID                  int64
	Age                 int
	StressDays          int
	AgeBracket          int
	Reference           uuid.UUID
}
