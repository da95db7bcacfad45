package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository/memory"
	"github.com/jwalitptl/frontdesk-api/internal/service/event"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	"github.com/jwalitptl/frontdesk-api/internal/session"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
	"github.com/jwalitptl/frontdesk-api/pkg/security"
)

func setup(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.AddOperator(&model.Operator{ID: 1, FirstNames: "Rosa", LastNames: "Rios", Email: "rosa@clinica.bo"})
	store.AddOperator(&model.Operator{ID: 2, FirstNames: "Luis", LastNames: "Vaca", Email: "luis@clinica.bo"})

	svc := NewService(
		store.Patients(),
		store.Consultations(),
		operator.NewService(store.Operators()),
		security.NewBcryptHasher(bcrypt.MinCost),
		event.NewEventService(store.Outbox()),
		"/consulta",
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func intake() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstNames:    "Ana",
		LastNames:     "Lopez",
		BirthDate:     "1990-01-01",
		GenderID:      2,
		Address:       "Av. Busch 123",
		ContactNumber: "70012345",
		Email:         "ana@example.com",
		Password:      "portal-pass",
		FamilyHistory: "Diabetes (madre)",
		Occupation:    "Docente",
	}
}

func operatorSession(t *testing.T, email string) *session.Session {
	t.Helper()
	sess, err := session.WithEmail(email)
	require.NoError(t, err)
	return sess
}

func TestRegisterCreatesPendingPatient(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, intake())
	require.NoError(t, err)
	assert.Equal(t, 1, store.PatientCount())
	assert.Equal(t, "/consulta?paciente_id=1", resp.ConsultationURL)

	p, err := svc.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PatientStatusPending, p.Status)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), p.BirthDate)
	assert.NotEqual(t, "portal-pass", p.PasswordHash)
	assert.True(t, security.NewBcryptHasher(bcrypt.MinCost).Matches(p.PasswordHash, "portal-pass"))

	events := store.OutboxEvents()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventPatientCreated, events[0].EventType)
}

func TestRegisterWithoutBirthDate(t *testing.T) {
	svc, store := setup(t)
	req := intake()
	req.BirthDate = ""

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Equal(t, "birth date is required", appErr.Message)
	assert.Zero(t, store.PatientCount())
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc, store := setup(t)
	req := intake()
	req.Address = ""
	req.Email = "not-an-email"

	_, err := svc.Register(context.Background(), req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
	assert.Contains(t, err.Error(), "direccion is required")
	assert.Zero(t, store.PatientCount())
}

func TestRegisterRejectsMalformedBirthDate(t *testing.T) {
	svc, _ := setup(t)
	req := intake()
	req.BirthDate = "01/01/1990"

	_, err := svc.Register(context.Background(), req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func seedConsultation(t *testing.T, store *memory.Store, patientID, operatorID int64) {
	t.Helper()
	require.NoError(t, store.Consultations().Create(context.Background(), &model.Consultation{
		PatientID: patientID, OperatorID: operatorID, Diagnosis: "Control",
	}))
}

func TestListForOperatorScopesToConsultedPatients(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, intake())
	require.NoError(t, err)
	other := intake()
	other.FirstNames, other.LastNames, other.Email = "Mario", "García", "mario@example.com"
	mario, err := svc.Register(ctx, other)
	require.NoError(t, err)

	seedConsultation(t, store, ana.ID, 1)
	seedConsultation(t, store, ana.ID, 1)
	seedConsultation(t, store, mario.ID, 2)

	items, err := svc.ListForOperator(ctx, operatorSession(t, "rosa@clinica.bo"), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ana.ID, items[0].ID)
	assert.Equal(t, 35, items[0].Age)
}

func TestListForOperatorWithoutConsultationsIsEmpty(t *testing.T) {
	svc, _ := setup(t)

	items, err := svc.ListForOperator(context.Background(), operatorSession(t, "rosa@clinica.bo"), "")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListForOperatorRequiresIdentity(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.ListForOperator(context.Background(), session.New(), "")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestListForOperatorExcludesInactive(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, intake())
	require.NoError(t, err)
	seedConsultation(t, store, ana.ID, 1)

	_, err = svc.SoftDelete(ctx, ana.ID)
	require.NoError(t, err)

	items, err := svc.ListForOperator(ctx, operatorSession(t, "rosa@clinica.bo"), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearch(t *testing.T) {
	patients := []*model.Patient{
		{FirstNames: "Ana", LastNames: "Lopez", Occupation: "Docente", ContactNumber: "70012345"},
		{FirstNames: "Mario", LastNames: "García", Occupation: "Chofer", ContactNumber: "71111111"},
	}

	assert.Len(t, Search(patients, ""), 2)
	assert.Len(t, Search(patients, "  "), 2)
	assert.Equal(t, "Ana", Search(patients, "lop")[0].FirstNames)
	assert.Equal(t, "Mario", Search(patients, "GARCÍA")[0].FirstNames)
	assert.Equal(t, "Mario", Search(patients, "chof")[0].FirstNames)
	assert.Equal(t, "Ana", Search(patients, "7001")[0].FirstNames)
	assert.Empty(t, Search(patients, "pediatra"))
}

func TestUpdateSelectsByEmailAndKeepsStatus(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, intake())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &model.UpdatePatientRequest{
		ID:         999,
		FirstNames: "Ana María",
		LastNames:  "Lopez",
		BirthDate:  "1991-02-03",
		Occupation: "Directora",
		Email:      "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ana María", updated.FirstNames)
	assert.Equal(t, "Directora", updated.Occupation)
	assert.Equal(t, model.PatientStatusPending, updated.Status)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, 1, store.PatientCount())
}

func TestUpdateUnknownEmail(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Update(context.Background(), &model.UpdatePatientRequest{
		FirstNames: "X", LastNames: "Y", BirthDate: "1990-01-01", Email: "ghost@example.com",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestSoftDeleteWritesInactiveSentinel(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, intake())
	require.NoError(t, err)

	p, err := svc.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PatientStatusInactive, p.Status)
	assert.Equal(t, 1, store.PatientCount())

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCode(10), stored.Status)

	_, err = svc.SoftDelete(ctx, 404)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestHeaderIncludesGenderName(t *testing.T) {
	svc, store := setup(t)
	store.AddGender(&model.Gender{ID: 2, Name: "Femenino"})

	created, err := svc.Register(context.Background(), intake())
	require.NoError(t, err)

	h, err := svc.Header(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Femenino", h.GenderName)
	assert.Equal(t, "Av. Busch 123", h.Address)
}
