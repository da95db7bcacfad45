package referral

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository/memory"
	"github.com/jwalitptl/frontdesk-api/internal/service/event"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	"github.com/jwalitptl/frontdesk-api/internal/session"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
)

type sent struct {
	to, subject, content string
}

type fakeMailer struct {
	sent []sent
	err  error
}

func (m *fakeMailer) SendCustom(_ context.Context, to, subject, content string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sent{to, subject, content})
	return nil
}

func setup(t *testing.T) (*Service, *fakeMailer, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	store.AddOperator(&model.Operator{ID: 1, FirstNames: "Rosa", LastNames: "Rios", Email: "rosa@clinica.bo"})
	store.AddOperator(&model.Operator{ID: 2, FirstNames: "Luis", LastNames: "Vaca", Specialty: "Cardiología", Email: "luis@clinica.bo"})
	p := &model.Patient{FirstNames: "Ana", LastNames: "Lopez", CardNumber: "4455667"}
	require.NoError(t, store.Patients().Create(context.Background(), p))

	mailer := &fakeMailer{}
	svc := NewService(operator.NewService(store.Operators()), store.Patients(), mailer, event.NewEventService(store.Outbox()))
	return svc, mailer, store, p.ID
}

func rosa(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.WithEmail("rosa@clinica.bo")
	require.NoError(t, err)
	return s
}

func TestSendMailsTargetOperator(t *testing.T) {
	svc, mailer, store, patientID := setup(t)

	err := svc.Send(context.Background(), rosa(t), &model.ReferralRequest{
		OperatorID: 2, PatientID: patientID, Message: "Soplo a evaluar.",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "luis@clinica.bo", mailer.sent[0].to)
	assert.Equal(t, "Derivación: Ana Lopez", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].content, "Rosa Rios le deriva al paciente Ana Lopez (CI 4455667)")
	assert.Contains(t, mailer.sent[0].content, "Soplo a evaluar.")

	events := store.OutboxEvents()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventConsultationReferred, events[0].EventType)
}

func TestSendValidatesRequest(t *testing.T) {
	svc, mailer, _, patientID := setup(t)

	err := svc.Send(context.Background(), rosa(t), &model.ReferralRequest{OperatorID: 2, PatientID: patientID})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
	assert.Empty(t, mailer.sent)
}

func TestSendUnknownTarget(t *testing.T) {
	svc, _, _, patientID := setup(t)

	err := svc.Send(context.Background(), rosa(t), &model.ReferralRequest{OperatorID: 99, PatientID: patientID, Message: "x"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	err = svc.Send(context.Background(), rosa(t), &model.ReferralRequest{OperatorID: 2, PatientID: 99, Message: "x"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestSendRequiresIdentity(t *testing.T) {
	svc, _, _, patientID := setup(t)

	err := svc.Send(context.Background(), session.New(), &model.ReferralRequest{OperatorID: 2, PatientID: patientID, Message: "x"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestSendMailFailure(t *testing.T) {
	svc, mailer, store, patientID := setup(t)
	mailer.err = errors.New("smtp down")

	err := svc.Send(context.Background(), rosa(t), &model.ReferralRequest{OperatorID: 2, PatientID: patientID, Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Empty(t, store.OutboxEvents())
}
