package model

import "strings"

const (
	AppointmentStatusPending   StatusCode = 9
	AppointmentStatusCancelled StatusCode = 10
)

// Appointment layouts for the date and time halves of fecha_cita.
const (
	AppointmentDateLayout     = "2006-01-02"
	AppointmentTimeLayout     = "15:04"
	AppointmentDateTimeLayout = AppointmentDateLayout + "T" + AppointmentTimeLayout
)

// Appointment (citas). ScheduledAt is the wall-clock literal exactly as it was
// composed, without any timezone.
type Appointment struct {
	ID          int64      `db:"cita_id" json:"cita_id"`
	PatientID   int64      `db:"paciente_id" json:"paciente_id"`
	OperatorID  int64      `db:"doctor_id" json:"doctor_id"`
	ScheduledAt string     `db:"fecha_cita" json:"fecha_cita"`
	Subject     string     `db:"asunto" json:"asunto"`
	Status      StatusCode `db:"estado" json:"estado"`
}

// AppointmentWithPatient is an appointment row with the nested patient fields
// the agenda needs.
type AppointmentWithPatient struct {
	Appointment
	PatientFirstNames string `db:"paciente_nombres" json:"paciente_nombres"`
	PatientLastNames  string `db:"paciente_apellidos" json:"paciente_apellidos"`
	PatientCardNumber string `db:"paciente_numero_carnet" json:"paciente_numero_carnet"`
}

func (a *AppointmentWithPatient) PatientName() string {
	return strings.TrimSpace(a.PatientFirstNames + " " + a.PatientLastNames)
}

type ScheduleAppointmentRequest struct {
	PatientID  int64  `json:"paciente_id" validate:"required"`
	OperatorID int64  `json:"doctor_id" validate:"required"`
	Date       string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Time       string `json:"hora" validate:"required,datetime=15:04"`
	Subject    string `json:"asunto" validate:"required"`
}

// ComposeScheduledAt joins the date and time literals as they were entered.
func ComposeScheduledAt(date, clock string) string {
	return date + "T" + clock
}
