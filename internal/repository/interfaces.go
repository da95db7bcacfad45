package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	pkgrepo "github.com/jwalitptl/frontdesk-api/pkg/repository"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	// OperatorRepository reads empleados; operators are never written here.
	OperatorRepository interface {
		GetByEmail(ctx context.Context, email string) (*model.Operator, error)
		Get(ctx context.Context, id int64) (*model.Operator, error)
		List(ctx context.Context) ([]*model.Operator, error)
	}

	PatientRepository interface {
		// Create inserts the row and fills in the generated id.
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		GetHeader(ctx context.Context, id int64) (*model.PatientHeader, error)
		// ListByIDs returns the patients in ids that are not inactive.
		ListByIDs(ctx context.Context, ids []int64) ([]*model.Patient, error)
		// UpdateByEmail writes every mutable column of the row whose email
		// matches patient.Email.
		UpdateByEmail(ctx context.Context, patient *model.Patient) (*model.Patient, error)
		SetStatus(ctx context.Context, id int64, status model.StatusCode) (*model.Patient, error)
	}

	ConsultationRepository interface {
		// Create inserts the consultation and any attached CIE-10 codes atomically.
		Create(ctx context.Context, consultation *model.Consultation) error
		PatientIDsForOperator(ctx context.Context, operatorID int64) ([]int64, error)
		History(ctx context.Context, patientID int64) ([]*model.ConsultationSummary, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		SetStatus(ctx context.Context, id int64, status model.StatusCode) error
		// ListForOperator returns non-cancelled appointments ordered by fecha_cita.
		ListForOperator(ctx context.Context, operatorID int64) ([]*model.AppointmentWithPatient, error)
	}

	CatalogRepository interface {
		ListGenders(ctx context.Context) ([]*model.Gender, error)
		ListCie10(ctx context.Context) ([]*model.Cie10Code, error)
		GetCie10(ctx context.Context, code string) (*model.Cie10Code, error)
	}

	OutboxRepository interface {
		pkgrepo.OutboxRepository
		Create(ctx context.Context, event *model.OutboxEvent) error
		// DeleteProcessedBefore removes published events older than cutoff.
		DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}
)
