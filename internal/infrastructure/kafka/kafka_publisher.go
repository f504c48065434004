package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Svaella/app-atension-api/pkg/events"
	pkgkafka "github.com/Svaella/app-atension-api/pkg/kafka"
)

// MessageProducer is the subset of *pkgkafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher delivers domain events and relayed outbox entries to Kafka.
// Messages are keyed by aggregate ID so every event of one assessment lands on
// the same partition.
type Publisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

// Compile-time interface check.
var _ events.EntryPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish encodes domain events and sends them in a single batch.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	entries, err := events.NewOutboxEntries(domainEvents)
	if err != nil {
		return err
	}
	return p.PublishEntries(ctx, entries...)
}

// PublishEntries sends already encoded outbox entries in a single batch.
func (p *Publisher) PublishEntries(ctx context.Context, entries ...events.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(entries))
	for _, e := range entries {
		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", e.EventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(e.Payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(e.AggregateID),
			Value: e.Payload,
			Headers: map[string]string{
				"event_id":       e.ID.String(),
				"event_type":     e.EventType,
				"aggregate_type": e.AggregateType,
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
