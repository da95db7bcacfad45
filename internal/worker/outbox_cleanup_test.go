package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository/memory"
	"github.com/jwalitptl/frontdesk-api/pkg/logger"
)

func TestCleanupRemovesOnlyOldProcessedEvents(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	outbox := store.Outbox()

	clock := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return clock }

	old := &model.OutboxEvent{EventType: model.EventPatientCreated, Payload: json.RawMessage(`{"paciente_id":1}`)}
	require.NoError(t, outbox.Create(ctx, old))
	require.NoError(t, outbox.MarkProcessed(ctx, old.ID))

	pending := &model.OutboxEvent{EventType: model.EventAppointmentScheduled, Payload: json.RawMessage(`{"cita_id":4}`)}
	require.NoError(t, outbox.Create(ctx, pending))

	clock = time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
	recent := &model.OutboxEvent{EventType: model.EventPatientCreated, Payload: json.RawMessage(`{"paciente_id":2}`)}
	require.NoError(t, outbox.Create(ctx, recent))
	require.NoError(t, outbox.MarkProcessed(ctx, recent.ID))

	var buf bytes.Buffer
	w := NewOutboxCleanupWorker(outbox, 7, time.Hour, logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Output: &buf}))
	w.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }

	deleted, err := w.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Contains(t, buf.String(), "Cleaned up outbox events")

	remaining := store.OutboxEvents()
	require.Len(t, remaining, 2)
	assert.Equal(t, pending.ID, remaining[0].ID)
	assert.Equal(t, recent.ID, remaining[1].ID)
}

func TestCleanupWrapsStoreErrors(t *testing.T) {
	store := memory.NewStore()
	store.Err = errors.New("connection refused")

	w := NewOutboxCleanupWorker(store.Outbox(), 0, 0, logger.NewLogger(&logger.Config{Output: &bytes.Buffer{}}))
	assert.Equal(t, 7, w.retentionDays)
	assert.Equal(t, time.Hour, w.cleanupInterval)

	_, err := w.Cleanup(context.Background())
	assert.ErrorContains(t, err, "failed to cleanup outbox events")
}
