package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Svaella/app-atension-api/internal/domain/event"
	"github.com/Svaella/app-atension-api/internal/domain/valueobject"
	"github.com/Svaella/app-atension-api/pkg/events"
)

var (
	ErrAlreadyClassified = errors.New("assessment already classified")
	ErrNotClassified     = errors.New("assessment not classified")
	ErrAlreadyPersisted  = errors.New("assessment already persisted")
)

// HypertensionAssessment is the aggregate root for one questionnaire
// submission. It starts unclassified; Classify attaches the model result and
// MarkPersisted stamps the stored identity and records the domain events.
type HypertensionAssessment struct {
	events.EventCollector
	createdAt   time.Time
	quiz        *QuizResult
	tier        valueobject.RiskTier
	probability valueobject.Probability
	bmi         decimal.Decimal
	features    FeatureVector
	input       AssessmentInput
	id          int64
	ageBracket  int
	reference   uuid.UUID
	classified  bool
}

// NewHypertensionAssessment creates an unclassified assessment from validated
// input and its encoded features. quiz may be nil for minimal payloads.
func NewHypertensionAssessment(input AssessmentInput, features FeatureVector, quiz *QuizResult) (*HypertensionAssessment, error) {
	if err := features.CheckShape(FeatureCount); err != nil {
		return nil, err
	}

	encoded := make(FeatureVector, len(features))
	copy(encoded, features)

	return &HypertensionAssessment{
		reference:  uuid.New(),
		input:      input,
		quiz:       quiz,
		features:   encoded,
		bmi:        decimal.NewFromFloat(encoded.BMI()).Round(2),
		ageBracket: encoded.AgeBracket(),
	}, nil
}

// Classify attaches the predicted probability and its tier.
func (a *HypertensionAssessment) Classify(p valueobject.Probability, tier valueobject.RiskTier) error {
	if a.classified {
		return ErrAlreadyClassified
	}
	if tier.IsZero() {
		return fmt.Errorf("risk tier is required")
	}
	a.probability = p
	a.tier = tier
	a.classified = true
	return nil
}

// MarkPersisted records the storage identity and emits AssessmentRecorded,
// plus HighRiskDetected for High-tier results.
func (a *HypertensionAssessment) MarkPersisted(id int64, createdAt time.Time) error {
	if !a.classified {
		return ErrNotClassified
	}
	if a.id != 0 {
		return ErrAlreadyPersisted
	}
	if id <= 0 {
		return fmt.Errorf("record id must be positive, got %d", id)
	}

	a.id = id
	a.createdAt = createdAt.UTC()

	percent := a.probability.Percent().StringFixed(2)
	a.Record(event.NewAssessmentRecorded(
		a.reference, a.id, a.tier.String(), percent,
		a.bmi.StringFixed(2), a.ageBracket, a.createdAt,
	))
	if a.tier.Equal(valueobject.RiskTierHigh) {
		a.Record(event.NewHighRiskDetected(a.reference, a.id, percent, a.createdAt))
	}
	return nil
}

// ToRecord returns the denormalized, human-readable form that is stored.
func (a *HypertensionAssessment) ToRecord() AssessmentRecord {
	in := a.input
	rec := AssessmentRecord{
		ID:               a.id,
		Reference:        a.reference,
		Sex:              in.Sex.Label(),
		Age:              in.Age,
		WeightKg:         in.WeightKg,
		HeightCm:         in.HeightCm,
		Fruits:           in.Fruits.Label(),
		Vegetables:       in.Vegetables.Label(),
		Salt:             in.Salt.Label(),
		Alcohol:          in.Alcohol.Label(),
		Smoking:          in.Smoking.Label(),
		Vaping:           in.Vaping.Label(),
		StressDays:       in.StressDays,
		PhysicalActivity: in.PhysicalActivity.Label(),
		Cholesterol:      in.Cholesterol.Label(),
		Diabetes:         in.Diabetes.Label(),
		BMI:              a.bmi,
		AgeBracket:       a.ageBracket,
		RiskTier:         a.tier.String(),
		Probability:      a.probability.Percent(),
		CreatedAt:        a.createdAt,
	}
	if a.quiz != nil {
		diagnosed := a.quiz.PreviouslyDiagnosed.Label()
		score := a.quiz.Score
		rec.PreviouslyDiagnosed = &diagnosed
		rec.QuizScore = &score
		rec.QuizAnswers = a.quiz.Answers
	}
	return rec
}

// --- Accessors ---

func (a *HypertensionAssessment) ID() int64                            { return a.id }
func (a *HypertensionAssessment) Reference() uuid.UUID                 { return a.reference }
func (a *HypertensionAssessment) Input() AssessmentInput               { return a.input }
func (a *HypertensionAssessment) BMI() decimal.Decimal                 { return a.bmi }
func (a *HypertensionAssessment) AgeBracket() int                      { return a.ageBracket }
func (a *HypertensionAssessment) Probability() valueobject.Probability { return a.probability }
func (a *HypertensionAssessment) RiskTier() valueobject.RiskTier       { return a.tier }
func (a *HypertensionAssessment) IsClassified() bool                   { return a.classified }
func (a *HypertensionAssessment) CreatedAt() time.Time                 { return a.createdAt }

// Features returns a copy of the encoded vector.
func (a *HypertensionAssessment) Features() FeatureVector {
	out := make(FeatureVector, len(a.features))
	copy(out, a.features)
	return out
}

// Quiz returns the quiz block and whether one was submitted.
func (a *HypertensionAssessment) Quiz() (QuizResult, bool) {
	if a.quiz == nil {
		return QuizResult{}, false
	}
	return *a.quiz, true
}
