package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/model"
)

func TestConsultationCreateAttachesCodesInTransaction(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO consultas`).
		WillReturnRows(sqlmock.NewRows([]string{"consulta_id", "fecha_consulta"}).AddRow(11, at))
	mock.ExpectExec(`INSERT INTO consulta_cie10`).WithArgs(int64(11), "J00").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO consulta_cie10`).WithArgs(int64(11), "R50.9").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c := &model.Consultation{
		PatientID:  3,
		OperatorID: 1,
		Codes:      []model.Cie10Code{{Code: "J00"}, {Code: "R50.9"}},
	}
	require.NoError(t, NewConsultationRepository(db).Create(context.Background(), c))
	assert.Equal(t, int64(11), c.ID)
	assert.Equal(t, at, c.CreatedAt)
}

func TestConsultationCreateRollsBackOnCodeFailure(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO consultas`).
		WillReturnRows(sqlmock.NewRows([]string{"consulta_id", "fecha_consulta"}).AddRow(11, time.Now()))
	mock.ExpectExec(`INSERT INTO consulta_cie10`).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := NewConsultationRepository(db).Create(context.Background(), &model.Consultation{
		PatientID: 3, OperatorID: 1, Codes: []model.Cie10Code{{Code: "ZZZ"}},
	})
	assert.ErrorContains(t, err, "failed to attach CIE-10 code ZZZ")
}

func TestPatientIDsForOperator(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT DISTINCT paciente_id FROM consultas WHERE doctor_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"paciente_id"}).AddRow(3).AddRow(5))

	ids, err := NewConsultationRepository(db).PatientIDsForOperator(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids)
}

func TestConsultationHistoryNewestFirst(t *testing.T) {
	db, mock := newMock(t)
	newer := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY fecha_consulta DESC`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"fecha_consulta", "diagnostico", "tratamiento_prescrito"}).
			AddRow(newer, "Faringitis", "Reposo").
			AddRow(older, "Control", ""))

	history, err := NewConsultationRepository(db).History(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Faringitis", history[0].Diagnosis)
	assert.Equal(t, newer, history[0].Date)
}
