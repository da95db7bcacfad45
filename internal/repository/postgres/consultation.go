package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/frontdesk-api/internal/model"
)

func (r *consultationRepository) Create(ctx context.Context, c *model.Consultation) error {
	query := `
		INSERT INTO consultas (
			paciente_id, doctor_id, motivo_consulta, sintomas, diagnostico,
			tratamiento_prescrito, notas, estatura_cm, peso_kg, imc, temperatura,
			frecuencia_respiratoria, presion_arterial, frecuencia_cardiaca
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING consulta_id, fecha_consulta
	`

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query,
			c.PatientID,
			c.OperatorID,
			c.Reason,
			c.Symptoms,
			c.Diagnosis,
			c.Treatment,
			c.Notes,
			c.HeightCM,
			c.WeightKG,
			c.BMI,
			c.Temperature,
			c.RespiratoryRate,
			c.BloodPressure,
			c.HeartRate,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create consultation: %w", err)
		}

		for _, code := range c.Codes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO consulta_cie10 (consulta_id, codigo) VALUES ($1, $2)`,
				c.ID, code.Code,
			); err != nil {
				return fmt.Errorf("failed to attach CIE-10 code %s: %w", code.Code, err)
			}
		}
		return nil
	})
}

func (r *consultationRepository) PatientIDsForOperator(ctx context.Context, operatorID int64) ([]int64, error) {
	query := `SELECT DISTINCT paciente_id FROM consultas WHERE doctor_id = $1`
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, query, operatorID); err != nil {
		return nil, fmt.Errorf("failed to list operator patients: %w", err)
	}
	return ids, nil
}

func (r *consultationRepository) History(ctx context.Context, patientID int64) ([]*model.ConsultationSummary, error) {
	query := `
		SELECT fecha_consulta, COALESCE(diagnostico, '') AS diagnostico,
			COALESCE(tratamiento_prescrito, '') AS tratamiento_prescrito
		FROM consultas
		WHERE paciente_id = $1
		ORDER BY fecha_consulta DESC
	`
	history := []*model.ConsultationSummary{}
	if err := r.db.SelectContext(ctx, &history, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return history, nil
}
