// Package outbox delivers events stored in the outbox table to the broker.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Svaella/app-atension-api/pkg/events"
	pkgpostgres "github.com/Svaella/app-atension-api/pkg/postgres"
)

// RepositoryFactory binds an outbox repository to a pool or a transaction.
type RepositoryFactory func(db pkgpostgres.Querier) events.OutboxRepository

// Config controls the polling loop.
type Config struct {
	Interval  time.Duration
	BatchSize int
}

// Relay moves unpublished outbox entries to the broker. Each batch is fetched,
// published and marked inside one transaction, so rows are locked while in
// flight and stay pending if publication or the commit fails. Delivery is
// at least once.
type Relay struct {
	db        pkgpostgres.TxBeginner
	repos     RepositoryFactory
	publisher events.EntryPublisher
	logger    *slog.Logger
	cfg       Config
}

// NewRelay creates a relay. Zero config values fall back to a one second
// interval and batches of 100.
func NewRelay(db pkgpostgres.TxBeginner, repos RepositoryFactory, publisher events.EntryPublisher, cfg Config, logger *slog.Logger) *Relay {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Relay{
		db:        db,
		repos:     repos,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// RunOnce relays at most one batch and returns how many entries were published.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	var published int
	err := pkgpostgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		repo := r.repos(tx)

		entries, err := repo.FetchUnpublished(ctx, r.cfg.BatchSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		if err := r.publisher.PublishEntries(ctx, entries...); err != nil {
			return fmt.Errorf("failed to relay %d outbox entries: %w", len(entries), err)
		}

		ids := make([]uuid.UUID, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := repo.MarkPublished(ctx, ids); err != nil {
			return err
		}
		published = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return published, nil
}

// Run polls until ctx is cancelled. A full batch is followed immediately by
// another one so a backlog drains without waiting for the ticker.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started",
		slog.Duration("interval", r.cfg.Interval),
		slog.Int("batch_size", r.cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			r.drain(ctx)
		}
	}
}

func (r *Relay) drain(ctx context.Context) {
	for {
		n, err := r.RunOnce(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				r.logger.WarnContext(ctx, "outbox relay batch failed", slog.String("error", err.Error()))
			}
			return
		}
		if n > 0 {
			r.logger.DebugContext(ctx, "outbox entries relayed", slog.Int("count", n))
		}
		if n < r.cfg.BatchSize || ctx.Err() != nil {
			return
		}
	}
}
