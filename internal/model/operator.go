package model

import "strings"

// Operator is a clinical staff member (empleados). Read-only for this service.
type Operator struct {
	ID         int64  `db:"empleado_id" json:"empleado_id"`
	FirstNames string `db:"nombres" json:"nombres"`
	LastNames  string `db:"apellidos" json:"apellidos"`
	Specialty  string `db:"especialidad" json:"especialidad"`
	Email      string `db:"correo" json:"correo"`
}

func (o *Operator) DisplayName() string {
	return strings.TrimSpace(o.FirstNames + " " + o.LastNames)
}
