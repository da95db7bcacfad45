package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
)

func TestSetStatusKeepsRowCount(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p := &model.Patient{FirstNames: "Ana", Status: model.PatientStatusPending, Email: "ana@example.com"}
	require.NoError(t, s.Patients().Create(ctx, p))

	updated, err := s.Patients().SetStatus(ctx, p.ID, model.PatientStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, model.PatientStatusInactive, updated.Status)
	assert.Equal(t, 1, s.PatientCount())

	listed, err := s.Patients().ListByIDs(ctx, []int64{p.ID})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestAppointmentsOrderedAndCancelledHidden(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for _, at := range []string{"2025-03-12T08:00", "2025-03-10T09:30", "2025-03-11T10:00"} {
		require.NoError(t, s.Appointments().Create(ctx, &model.Appointment{OperatorID: 1, ScheduledAt: at, Status: model.AppointmentStatusPending}))
	}
	require.NoError(t, s.Appointments().SetStatus(ctx, 3, model.AppointmentStatusCancelled))
	assert.ErrorIs(t, s.Appointments().SetStatus(ctx, 99, model.AppointmentStatusCancelled), repository.ErrNotFound)

	rows, err := s.Appointments().ListForOperator(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-03-10T09:30", rows[0].ScheduledAt)
	assert.Equal(t, "2025-03-12T08:00", rows[1].ScheduledAt)
}

func TestOutboxRetryIsNotDueUntilRetryAt(t *testing.T) {
	s := NewStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }
	ctx := context.Background()

	e := &model.OutboxEvent{EventType: model.EventPatientCreated, Payload: json.RawMessage(`{}`)}
	require.NoError(t, s.Outbox().Create(ctx, e))
	require.NoError(t, s.Outbox().MarkRetry(ctx, e.ID, "down", now.Add(time.Minute)))

	due, err := s.Outbox().GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	now = now.Add(2 * time.Minute)
	due, err = s.Outbox().GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].RetryCount)
}
