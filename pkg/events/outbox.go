package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a domain event waiting in the outbox table for delivery.
type OutboxEntry struct {
	CreatedAt     time.Time
	PublishedAt   *time.Time
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       []byte
	ID            uuid.UUID
}

// NewOutboxEntry snapshots a DomainEvent into an OutboxEntry. The payload is
// the JSON encoding of the event itself and the entry keeps the event ID, so
// consumers can deduplicate redeliveries.
func NewOutboxEntry(event DomainEvent) (OutboxEntry, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// NewOutboxEntries converts a batch of events, stopping at the first failure.
func NewOutboxEntries(evts []DomainEvent) ([]OutboxEntry, error) {
	entries := make([]OutboxEntry, 0, len(evts))
	for _, evt := range evts {
		entry, err := NewOutboxEntry(evt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// OutboxRepository is the port for outbox persistence.
type OutboxRepository interface {
	Store(ctx context.Context, entries []OutboxEntry) error
	FetchUnpublished(ctx context.Context, batchSize int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// EntryPublisher delivers stored outbox entries to a message broker.
type EntryPublisher interface {
	PublishEntries(ctx context.Context, entries ...OutboxEntry) error
}
