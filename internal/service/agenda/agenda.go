package agenda

import (
	"math"
	"strings"
	"time"

	"github.com/jwalitptl/frontdesk-api/internal/model"
)

const (
	DisplayDateLayout = "02/01/2006"
	DisplayTimeLayout = "15:04"
)

var scheduledAtLayouts = []string{
	model.AppointmentDateTimeLayout,
	model.AppointmentDateTimeLayout + ":05",
	"2006-01-02 15:04:05",
}

// Row is one agenda line.
type Row struct {
	ID            int64  `json:"cita_id"`
	PatientID     int64  `json:"paciente_id"`
	Patient       string `json:"paciente"`
	CardNumber    string `json:"ci"`
	ScheduledAt   string `json:"fecha_cita"`
	Date          string `json:"fecha"`
	Time          string `json:"hora"`
	DaysRemaining int    `json:"dias_restantes"`
	Subject       string `json:"asunto"`

	at time.Time
}

// DaysRemaining is ceil((at - now) / 24h). It goes negative once at has
// passed.
func DaysRemaining(at, now time.Time) int {
	return int(math.Ceil(float64(at.Sub(now)) / float64(24*time.Hour)))
}

// ParseScheduledAt reads a fecha_cita literal as wall-clock time in loc.
func ParseScheduledAt(v string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range scheduledAtLayouts {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(v), loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func newRow(a *model.AppointmentWithPatient, loc *time.Location, now time.Time) *Row {
	r := &Row{
		ID:          a.ID,
		PatientID:   a.PatientID,
		Patient:     a.PatientName(),
		CardNumber:  a.PatientCardNumber,
		ScheduledAt: a.ScheduledAt,
		Subject:     a.Subject,
	}
	if at, err := ParseScheduledAt(a.ScheduledAt, loc); err == nil {
		r.at = at
		r.Date = at.Format(DisplayDateLayout)
		r.Time = at.Format(DisplayTimeLayout)
		r.DaysRemaining = DaysRemaining(at, now)
	}
	return r
}

// Agenda is a point-in-time snapshot of an operator's appointments. Its
// operations never go back to the store.
type Agenda struct {
	rows []*Row
}

func (a *Agenda) Rows() []*Row {
	return a.rows
}

// Refresh drops the rows dated strictly before now and recomputes days
// remaining for the rest. Rows whose date could not be read are kept.
func (a *Agenda) Refresh(now time.Time) {
	kept := a.rows[:0]
	for _, r := range a.rows {
		if r.at.IsZero() {
			kept = append(kept, r)
			continue
		}
		if r.at.Before(now) {
			continue
		}
		r.DaysRemaining = DaysRemaining(r.at, now)
		kept = append(kept, r)
	}
	a.rows = kept
}

// Search matches patient name and subject ignoring case, and the CI as a
// plain substring.
func (a *Agenda) Search(query string) []*Row {
	q := strings.TrimSpace(query)
	if q == "" {
		return a.rows
	}
	needle := strings.ToLower(q)

	out := make([]*Row, 0, len(a.rows))
	for _, r := range a.rows {
		if strings.Contains(strings.ToLower(r.Patient), needle) ||
			strings.Contains(strings.ToLower(r.Subject), needle) ||
			strings.Contains(r.CardNumber, q) {
			out = append(out, r)
		}
	}
	return out
}

// Remove drops one row locally, as after a cancellation.
func (a *Agenda) Remove(id int64) bool {
	for i, r := range a.rows {
		if r.ID == id {
			a.rows = append(a.rows[:i], a.rows[i+1:]...)
			return true
		}
	}
	return false
}
