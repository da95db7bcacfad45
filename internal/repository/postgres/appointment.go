package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
)

// fecha_cita is a timestamp without time zone; it is read back in the same
// literal shape it was written in.
const scheduledAtColumn = `to_char(c.fecha_cita, 'YYYY-MM-DD"T"HH24:MI') AS fecha_cita`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO citas (paciente_id, doctor_id, fecha_cita, asunto, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING cita_id
	`
	err := r.db.QueryRowxContext(ctx, query,
		appointment.PatientID,
		appointment.OperatorID,
		appointment.ScheduledAt,
		appointment.Subject,
		appointment.Status,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT c.cita_id, c.paciente_id, c.doctor_id, ` + scheduledAtColumn + `,
			c.asunto, COALESCE(c.estado, 0) AS estado
		FROM citas c
		WHERE c.cita_id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, notFound(err, "get appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) SetStatus(ctx context.Context, id int64, status model.StatusCode) error {
	result, err := r.db.ExecContext(ctx, `UPDATE citas SET estado = $1 WHERE cita_id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) ListForOperator(ctx context.Context, operatorID int64) ([]*model.AppointmentWithPatient, error) {
	query := `
		SELECT c.cita_id, c.paciente_id, c.doctor_id, ` + scheduledAtColumn + `,
			c.asunto, COALESCE(c.estado, 0) AS estado,
			p.nombres AS paciente_nombres,
			p.apellidos AS paciente_apellidos,
			COALESCE(p.numero_carnet, '') AS paciente_numero_carnet
		FROM citas c
		JOIN pacientes p ON p.paciente_id = c.paciente_id
		WHERE c.doctor_id = $1 AND c.estado IS DISTINCT FROM $2
		ORDER BY c.fecha_cita ASC
	`
	rows := []*model.AppointmentWithPatient{}
	if err := r.db.SelectContext(ctx, &rows, query, operatorID, model.AppointmentStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return rows, nil
}
