package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
)

var patientRowColumns = []string{
	"paciente_id", "nombres", "apellidos", "fecha_nacimiento", "genero", "estado",
	"direccion", "numero_contacto", "numero_carnet", "antecedentes_familiares",
	"ocupacion", "email", "pass", "created_at",
}

func patientRow(rows *sqlmock.Rows, id int64, status model.StatusCode) *sqlmock.Rows {
	return rows.AddRow(id, "Ana", "Lopez", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 2, int64(status),
		"Calle 1", "70000000", "123456", "", "Docente", "ana@example.com", "hash", time.Now())
}

func TestPatientCreateReturnsGeneratedID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPatientRepository(db)

	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO pacientes`).
		WithArgs("Ana", "Lopez", sqlmock.AnyArg(), int64(0), int64(model.PatientStatusPending),
			"Calle 1", "70000000", "", "", "Docente", "ana@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"paciente_id", "created_at"}).AddRow(42, created))

	p := &model.Patient{
		FirstNames:    "Ana",
		LastNames:     "Lopez",
		BirthDate:     time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        model.PatientStatusPending,
		Address:       "Calle 1",
		ContactNumber: "70000000",
		Occupation:    "Docente",
		Email:         "ana@example.com",
		PasswordHash:  "hash",
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, created, p.CreatedAt)
}

func TestPatientListByIDsSkipsQueryForEmptySet(t *testing.T) {
	db, _ := newMock(t)

	patients, err := NewPatientRepository(db).ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
}

func TestPatientListByIDsExcludesInactive(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`FROM pacientes\s+WHERE paciente_id = ANY\(\$1\) AND estado IS DISTINCT FROM \$2`).
		WithArgs(pq.Array([]int64{3, 5}), int64(model.PatientStatusInactive)).
		WillReturnRows(patientRow(sqlmock.NewRows(patientRowColumns), 3, model.PatientStatusPending))

	patients, err := NewPatientRepository(db).ListByIDs(context.Background(), []int64{3, 5})
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Ana", patients[0].FirstNames)
	assert.Equal(t, model.PatientStatusPending, patients[0].Status)
}

func TestPatientUpdateByEmailNeverWritesEmail(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`UPDATE pacientes\s+SET nombres = \$1, apellidos = \$2, fecha_nacimiento = \$3, genero = NULLIF\(\$4, 0\),\s+direccion = \$5, numero_contacto = \$6, antecedentes_familiares = \$7, ocupacion = \$8\s+WHERE email = \$9`).
		WithArgs("Ana", "Lopez", sqlmock.AnyArg(), int64(2), "Calle 2", "7111", "", "Docente", "ana@example.com").
		WillReturnRows(patientRow(sqlmock.NewRows(patientRowColumns), 3, model.PatientStatusPending))

	updated, err := NewPatientRepository(db).UpdateByEmail(context.Background(), &model.Patient{
		FirstNames:    "Ana",
		LastNames:     "Lopez",
		GenderID:      2,
		Address:       "Calle 2",
		ContactNumber: "7111",
		Occupation:    "Docente",
		Email:         "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.ID)
}

func TestPatientSetStatusNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`UPDATE pacientes SET estado = \$1 WHERE paciente_id = \$2`).
		WithArgs(int64(model.PatientStatusInactive), int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := NewPatientRepository(db).SetStatus(context.Background(), 99, model.PatientStatusInactive)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPatientGetHeaderJoinsGender(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`LEFT JOIN generos g ON g.genero_id = p.genero`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"paciente_id", "nombres", "apellidos", "email", "direccion", "genero", "genero_nombre"}).
			AddRow(3, "Ana", "Lopez", "ana@example.com", "Calle 1", 2, "Femenino"))

	header, err := NewPatientRepository(db).GetHeader(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Femenino", header.GenderName)
}
