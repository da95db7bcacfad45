package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
	"github.com/jwalitptl/frontdesk-api/internal/service/event"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
	"github.com/jwalitptl/frontdesk-api/pkg/validator"
)

var ErrMissingFields = errors.New("doctor, date, time and subject are required")

type Service struct {
	repo      repository.AppointmentRepository
	patients  repository.PatientRepository
	operators *operator.Service
	validate  validator.Validator
	events    event.Emitter
}

func NewService(repo repository.AppointmentRepository, patients repository.PatientRepository, operators *operator.Service, events event.Emitter) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		operators: operators,
		validate:  validator.New(),
		events:    events,
	}
}

// Schedule books a pending appointment with any operator of the roster.
// fecha_cita is stored as the literal date "T" time, with no zone applied.
func (s *Service) Schedule(ctx context.Context, req *model.ScheduleAppointmentRequest) (*model.Appointment, error) {
	if req.OperatorID == 0 || blank(req.Date) || blank(req.Time) || blank(req.Subject) {
		return nil, apperrors.BadRequest(ErrMissingFields.Error(), ErrMissingFields)
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	if _, err := s.operators.Get(ctx, req.OperatorID); err != nil {
		return nil, err
	}
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	apt := &model.Appointment{
		PatientID:   req.PatientID,
		OperatorID:  req.OperatorID,
		ScheduledAt: model.ComposeScheduledAt(req.Date, req.Time),
		Subject:     strings.TrimSpace(req.Subject),
		Status:      model.AppointmentStatusPending,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	event.Record(ctx, s.events, model.EventAppointmentScheduled, map[string]interface{}{
		"cita_id":     apt.ID,
		"paciente_id": apt.PatientID,
		"doctor_id":   apt.OperatorID,
		"fecha_cita":  apt.ScheduledAt,
	})
	return apt, nil
}

// Cancel writes the cancelled sentinel. The row stays in citas.
func (s *Service) Cancel(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := s.repo.SetStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	apt.Status = model.AppointmentStatusCancelled

	event.Record(ctx, s.events, model.EventAppointmentCancelled, map[string]interface{}{
		"cita_id": apt.ID,
		"estado":  apt.Status,
	})
	return apt, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
