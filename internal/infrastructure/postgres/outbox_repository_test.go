package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Svaella/app-atension-api/pkg/events"
)

func TestOutboxRepository_Store(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewOutboxRepository(q)
	createdAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	entries := []events.OutboxEntry{
		{ID: uuid.New(), AggregateID: "ref-1", AggregateType: "HypertensionAssessment", EventType: "hta.assessment.recorded", Payload: []byte(`{}`), CreatedAt: createdAt},
		{ID: uuid.New(), AggregateID: "ref-1", AggregateType: "HypertensionAssessment", EventType: "hta.high_risk.detected", Payload: []byte(`{}`), CreatedAt: createdAt},
	}
	require.NoError(t, repo.Store(context.Background(), entries))

	require.Len(t, q.execs, 2)
	assert.Contains(t, q.execs[0].sql, "ON CONFLICT (id) DO NOTHING")
	assert.Equal(t, []any{entries[1].ID, "ref-1", "HypertensionAssessment", "hta.high_risk.detected", []byte(`{}`), createdAt}, q.execs[1].args)
}

func TestOutboxRepository_Store_Error(t *testing.T) {
	q := &fakeQuerier{execErr: errors.New("unique violation")}
	id := uuid.New()

	err := NewOutboxRepository(q).Store(context.Background(), []events.OutboxEntry{{ID: id}, {ID: uuid.New()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), id.String())
	assert.Len(t, q.execs, 1, "stops at the first failure")
}

func TestOutboxRepository_MarkPublished(t *testing.T) {
	q := &fakeQuerier{}
	repo := NewOutboxRepository(q)

	require.NoError(t, repo.MarkPublished(context.Background(), nil))
	assert.Empty(t, q.execs)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	require.NoError(t, repo.MarkPublished(context.Background(), ids))
	require.Len(t, q.execs, 1)
	assert.Contains(t, q.execs[0].sql, "published_at IS NULL")
	assert.Equal(t, []any{ids}, q.execs[0].args)

	q.execErr = errors.New("timeout")
	assert.ErrorContains(t, repo.MarkPublished(context.Background(), ids), "failed to mark outbox entries published")
}

func TestOutboxRepository_FetchUnpublished_QueryError(t *testing.T) {
	q := &fakeQuerier{queryErr: errors.New("timeout")}

	_, err := NewOutboxRepository(q).FetchUnpublished(context.Background(), 50)
	assert.ErrorContains(t, err, "failed to query outbox")
	assert.Contains(t, q.lastSQL, "FOR UPDATE SKIP LOCKED")
	assert.Equal(t, []any{50}, q.lastArgs)
}
