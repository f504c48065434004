// Package events defines the domain event contract shared by aggregates and
// the messaging adapters.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides the envelope part of a DomainEvent. Concrete events embed
// it and carry their payload as exported, JSON-tagged fields.
type BaseEvent struct {
	occurredAt    time.Time
	eventType     string
	aggregateID   string
	aggregateType string
	id            uuid.UUID
}

// NewBaseEvent creates a BaseEvent with a generated ID stamped at the current time.
func NewBaseEvent(eventType, aggregateType, aggregateID string) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.id }
func (e BaseEvent) EventType() string     { return e.eventType }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
func (e BaseEvent) AggregateType() string { return e.aggregateType }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
