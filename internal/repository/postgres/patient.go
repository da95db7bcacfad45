package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/frontdesk-api/internal/model"
)

const patientColumns = `paciente_id, nombres, apellidos, fecha_nacimiento, COALESCE(genero, 0) AS genero,
	COALESCE(estado, 0) AS estado, direccion, numero_contacto, COALESCE(numero_carnet, '') AS numero_carnet,
	antecedentes_familiares, ocupacion, email, pass, created_at`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO pacientes (
			nombres, apellidos, fecha_nacimiento, genero, estado, direccion,
			numero_contacto, numero_carnet, antecedentes_familiares, ocupacion, email, pass
		) VALUES ($1, $2, $3, NULLIF($4, 0), $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12)
		RETURNING paciente_id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		patient.FirstNames,
		patient.LastNames,
		patient.BirthDate,
		patient.GenderID,
		patient.Status,
		patient.Address,
		patient.ContactNumber,
		patient.CardNumber,
		patient.FamilyHistory,
		patient.Occupation,
		patient.Email,
		patient.PasswordHash,
	).Scan(&patient.ID, &patient.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM pacientes WHERE paciente_id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, notFound(err, "get patient")
	}
	return &patient, nil
}

func (r *patientRepository) GetHeader(ctx context.Context, id int64) (*model.PatientHeader, error) {
	query := `
		SELECT p.paciente_id, p.nombres, p.apellidos, p.email, p.direccion,
			COALESCE(p.genero, 0) AS genero, COALESCE(g.nombre, '') AS genero_nombre
		FROM pacientes p
		LEFT JOIN generos g ON g.genero_id = p.genero
		WHERE p.paciente_id = $1
	`
	var header model.PatientHeader
	if err := r.db.GetContext(ctx, &header, query, id); err != nil {
		return nil, notFound(err, "get patient header")
	}
	return &header, nil
}

func (r *patientRepository) ListByIDs(ctx context.Context, ids []int64) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	if len(ids) == 0 {
		return patients, nil
	}

	query := `
		SELECT ` + patientColumns + `
		FROM pacientes
		WHERE paciente_id = ANY($1) AND estado IS DISTINCT FROM $2
		ORDER BY apellidos, nombres
	`
	if err := r.db.SelectContext(ctx, &patients, query, pq.Array(ids), model.PatientStatusInactive); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) UpdateByEmail(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	query := `
		UPDATE pacientes
		SET nombres = $1, apellidos = $2, fecha_nacimiento = $3, genero = NULLIF($4, 0),
			direccion = $5, numero_contacto = $6, antecedentes_familiares = $7, ocupacion = $8
		WHERE email = $9
		RETURNING ` + patientColumns
	var updated model.Patient
	err := r.db.GetContext(ctx, &updated, query,
		patient.FirstNames,
		patient.LastNames,
		patient.BirthDate,
		patient.GenderID,
		patient.Address,
		patient.ContactNumber,
		patient.FamilyHistory,
		patient.Occupation,
		patient.Email,
	)
	if err != nil {
		return nil, notFound(err, "update patient")
	}
	return &updated, nil
}

func (r *patientRepository) SetStatus(ctx context.Context, id int64, status model.StatusCode) (*model.Patient, error) {
	query := `UPDATE pacientes SET estado = $1 WHERE paciente_id = $2 RETURNING ` + patientColumns
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, status, id); err != nil {
		return nil, notFound(err, "update patient status")
	}
	return &patient, nil
}
