package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Svaella/app-atension-api/pkg/events"
	pkgpostgres "github.com/Svaella/app-atension-api/pkg/postgres"
)

// Compile-time interface check.
var _ events.OutboxRepository = (*OutboxRepository)(nil)

// OutboxRepository stores pending domain events in outbox_events. Given a
// pgx.Tx it writes alongside the aggregate in the same transaction.
type OutboxRepository struct {
	db pkgpostgres.Querier
}

// NewOutboxRepository creates an outbox repository over a pool or a transaction.
func NewOutboxRepository(db pkgpostgres.Querier) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// Store inserts entries as unpublished. Entries already present are skipped.
func (r *OutboxRepository) Store(ctx context.Context, entries []events.OutboxEntry) error {
	const query = `
		INSERT INTO outbox_events (id, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	for _, e := range entries {
		if _, err := r.db.Exec(ctx, query,
			e.ID, e.AggregateID, e.AggregateType, e.EventType, e.Payload, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to store outbox entry %s: %w", e.ID, err)
		}
	}
	return nil
}

// FetchUnpublished returns up to batchSize pending entries, oldest first.
// Rows locked by another relay are skipped.
func (r *OutboxRepository) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at
		FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	defer rows.Close()

	entries := make([]events.OutboxEntry, 0, batchSize)
	for rows.Next() {
		var e events.OutboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.AggregateType, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the given entries with the current time.
func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx,
		`UPDATE outbox_events SET published_at = now() WHERE id = ANY($1) AND published_at IS NULL`, ids,
	); err != nil {
		return fmt.Errorf("failed to mark outbox entries published: %w", err)
	}
	return nil
}
