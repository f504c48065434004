package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/Svaella/app-atension-api/pkg/events"
)

const (
	// AggregateType identifies hypertension assessments in event envelopes.
	AggregateType = "hypertension_assessment"

	// EventTypeAssessmentRecorded is emitted once an assessment has been stored.
	EventTypeAssessmentRecorded = "hta.assessment.recorded"

	// EventTypeHighRiskDetected is emitted when a stored assessment is in the High tier.
	EventTypeHighRiskDetected = "hta.high_risk.detected"
)

// AssessmentRecorded is published after a complete assessment has been persisted.
type AssessmentRecorded struct {
	events.BaseEvent
	RecordedAt  time.Time `json:"recorded_at"`
	RiskTier    string    `json:"riesgo"`
	Probability string    `json:"probabilidad"`
	BMI         string    `json:"bmi"`
	RecordID    int64     `json:"id"`
	AgeBracket  int       `json:"age_bracket"`
	Reference   uuid.UUID `json:"reference"`
}

// NewAssessmentRecorded builds the event for a stored assessment.
func NewAssessmentRecorded(
	reference uuid.UUID,
	recordID int64,
	riskTier, probability, bmi string,
	ageBracket int,
	recordedAt time.Time,
) AssessmentRecorded {
	return AssessmentRecorded{
		BaseEvent:   events.NewBaseEvent(EventTypeAssessmentRecorded, AggregateType, reference.String()),
		Reference:   reference,
		RecordID:    recordID,
		RiskTier:    riskTier,
		Probability: probability,
		BMI:         bmi,
		AgeBracket:  ageBracket,
		RecordedAt:  recordedAt,
	}
}

// HighRiskDetected is published alongside AssessmentRecorded for High-tier results,
// so downstream follow-up can subscribe to it alone.
type HighRiskDetected struct {
	events.BaseEvent
	DetectedAt  time.Time `json:"detected_at"`
	Probability string    `json:"probabilidad"`
	RecordID    int64     `json:"id"`
	Reference   uuid.UUID `json:"reference"`
}

// NewHighRiskDetected builds the event for a High-tier assessment.
func NewHighRiskDetected(reference uuid.UUID, recordID int64, probability string, detectedAt time.Time) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:   events.NewBaseEvent(EventTypeHighRiskDetected, AggregateType, reference.String()),
		Reference:   reference,
		RecordID:    recordID,
		Probability: probability,
		DetectedAt:  detectedAt,
	}
}
