package model

import "time"

// Consultation is one clinical encounter (consultas). Rows are never updated.
type Consultation struct {
	ID              int64     `db:"consulta_id" json:"consulta_id"`
	PatientID       int64     `db:"paciente_id" json:"paciente_id"`
	OperatorID      int64     `db:"doctor_id" json:"doctor_id"`
	Reason          string    `db:"motivo_consulta" json:"motivo_consulta"`
	Symptoms        string    `db:"sintomas" json:"sintomas"`
	Diagnosis       string    `db:"diagnostico" json:"diagnostico"`
	Treatment       string    `db:"tratamiento_prescrito" json:"tratamiento_prescrito"`
	Notes           string    `db:"notas" json:"notas"`
	HeightCM        *float64  `db:"estatura_cm" json:"estatura_cm,omitempty"`
	WeightKG        *float64  `db:"peso_kg" json:"peso_kg,omitempty"`
	BMI             *float64  `db:"imc" json:"imc,omitempty"`
	Temperature     *float64  `db:"temperatura" json:"temperatura,omitempty"`
	RespiratoryRate *int      `db:"frecuencia_respiratoria" json:"frecuencia_respiratoria,omitempty"`
	BloodPressure   string    `db:"presion_arterial" json:"presion_arterial"`
	HeartRate       *int      `db:"frecuencia_cardiaca" json:"frecuencia_cardiaca,omitempty"`
	CreatedAt       time.Time `db:"fecha_consulta" json:"fecha_consulta"`

	Codes []Cie10Code `db:"-" json:"cie10,omitempty"`
}

// ConsultationSummary is one row of a patient's history.
type ConsultationSummary struct {
	Date      time.Time `db:"fecha_consulta" json:"date"`
	Diagnosis string    `db:"diagnostico" json:"diagnosis"`
	Treatment string    `db:"tratamiento_prescrito" json:"treatment"`
}

// ConsultationRequest is the full consultation form. Every field is optional
// except the patient; a missing imc is derived from height and weight.
type ConsultationRequest struct {
	PatientID       int64    `json:"paciente_id"`
	DraftID         string   `json:"draft_id,omitempty"`
	HeightCM        *float64 `json:"estatura_cm"`
	WeightKG        *float64 `json:"peso_kg"`
	BMI             *float64 `json:"imc"`
	Temperature     *float64 `json:"temperatura"`
	RespiratoryRate *int     `json:"frecuencia_respiratoria"`
	BloodPressure   string   `json:"presion_arterial"`
	HeartRate       *int     `json:"frecuencia_cardiaca"`
	Reason          string   `json:"motivo_consulta"`
	Symptoms        string   `json:"sintomas"`
	Diagnosis       string   `json:"diagnostico"`
	Treatment       string   `json:"tratamiento_prescrito"`
	Notes           string   `json:"notas"`
}

// QuickConsultationRequest is the modal variant: nothing may be left empty.
type QuickConsultationRequest struct {
	PatientID       int64    `json:"paciente_id" validate:"required"`
	HeightCM        *float64 `json:"estatura_cm" validate:"required"`
	WeightKG        *float64 `json:"peso_kg" validate:"required"`
	BMI             *float64 `json:"imc" validate:"required"`
	Temperature     *float64 `json:"temperatura" validate:"required"`
	RespiratoryRate *int     `json:"frecuencia_respiratoria" validate:"required"`
	BloodPressure   string   `json:"presion_arterial" validate:"required"`
	HeartRate       *int     `json:"frecuencia_cardiaca" validate:"required"`
	Reason          string   `json:"motivo_consulta" validate:"required"`
	Symptoms        string   `json:"sintomas" validate:"required"`
	Diagnosis       string   `json:"diagnostico" validate:"required"`
	Treatment       string   `json:"tratamiento_prescrito" validate:"required"`
	Notes           string   `json:"notas" validate:"required"`
}

func (r *QuickConsultationRequest) Form() *ConsultationRequest {
	return &ConsultationRequest{
		PatientID:       r.PatientID,
		HeightCM:        r.HeightCM,
		WeightKG:        r.WeightKG,
		BMI:             r.BMI,
		Temperature:     r.Temperature,
		RespiratoryRate: r.RespiratoryRate,
		BloodPressure:   r.BloodPressure,
		HeartRate:       r.HeartRate,
		Reason:          r.Reason,
		Symptoms:        r.Symptoms,
		Diagnosis:       r.Diagnosis,
		Treatment:       r.Treatment,
		Notes:           r.Notes,
	}
}

// ReferralRequest derives a consultation to another operator.
type ReferralRequest struct {
	OperatorID int64  `json:"doctor_id" validate:"required"`
	PatientID  int64  `json:"paciente_id" validate:"required"`
	Message    string `json:"mensaje" validate:"required,max=2000"`
}
