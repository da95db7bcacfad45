package model

import (
	"strings"
	"time"
)

const (
	PatientStatusActive   StatusCode = 1
	PatientStatusPending  StatusCode = 9
	PatientStatusInactive StatusCode = 10
)

// BirthDateLayout is the calendar-date format accepted for fecha_nacimiento.
const BirthDateLayout = "2006-01-02"

type Patient struct {
	ID            int64      `db:"paciente_id" json:"paciente_id"`
	FirstNames    string     `db:"nombres" json:"nombres"`
	LastNames     string     `db:"apellidos" json:"apellidos"`
	BirthDate     time.Time  `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	GenderID      int64      `db:"genero" json:"genero,omitempty"`
	Status        StatusCode `db:"estado" json:"estado"`
	Address       string     `db:"direccion" json:"direccion"`
	ContactNumber string     `db:"numero_contacto" json:"numero_contacto"`
	CardNumber    string     `db:"numero_carnet" json:"numero_carnet,omitempty"`
	FamilyHistory string     `db:"antecedentes_familiares" json:"antecedentes_familiares"`
	Occupation    string     `db:"ocupacion" json:"ocupacion"`
	Email         string     `db:"email" json:"email"`
	PasswordHash  string     `db:"pass" json:"-"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

func (p *Patient) DisplayName() string {
	return strings.TrimSpace(p.FirstNames + " " + p.LastNames)
}

// Age is the difference in calendar years, without adjusting for the birthday.
func (p *Patient) Age(now time.Time) int {
	return now.Year() - p.BirthDate.Year()
}

func (p *Patient) Inactive() bool {
	return p.Status == PatientStatusInactive
}

// PatientHeader is the patient summary shown above the consultation form.
type PatientHeader struct {
	ID         int64  `db:"paciente_id" json:"paciente_id"`
	FirstNames string `db:"nombres" json:"nombres"`
	LastNames  string `db:"apellidos" json:"apellidos"`
	Email      string `db:"email" json:"email"`
	Address    string `db:"direccion" json:"direccion"`
	GenderID   int64  `db:"genero" json:"genero,omitempty"`
	GenderName string `db:"genero_nombre" json:"genero_nombre,omitempty"`
}

type CreatePatientRequest struct {
	FirstNames    string `json:"nombres" validate:"required"`
	LastNames     string `json:"apellidos" validate:"required"`
	BirthDate     string `json:"fecha_nacimiento"`
	GenderID      int64  `json:"genero"`
	Address       string `json:"direccion" validate:"required"`
	ContactNumber string `json:"numero_contacto" validate:"required"`
	CardNumber    string `json:"numero_carnet"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"pass" validate:"required,min=8"`
	FamilyHistory string `json:"antecedentes_familiares" validate:"required"`
	Occupation    string `json:"ocupacion" validate:"required"`
}

// UpdatePatientRequest carries the full record. Email selects the row and is
// never written.
type UpdatePatientRequest struct {
	ID            int64  `json:"paciente_id"`
	FirstNames    string `json:"nombres" validate:"required"`
	LastNames     string `json:"apellidos" validate:"required"`
	BirthDate     string `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	GenderID      int64  `json:"genero"`
	Address       string `json:"direccion"`
	ContactNumber string `json:"numero_contacto"`
	FamilyHistory string `json:"antecedentes_familiares"`
	Occupation    string `json:"ocupacion"`
	Email         string `json:"email" validate:"required,email"`
}

type CreatePatientResponse struct {
	ID              int64  `json:"paciente_id"`
	ConsultationURL string `json:"consultation_url"`
}

// PatientListItem is a patient row as the list screen shows it.
type PatientListItem struct {
	*Patient
	Age int `json:"edad"`
}
