package consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
	"github.com/jwalitptl/frontdesk-api/internal/service/event"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	"github.com/jwalitptl/frontdesk-api/internal/session"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
	"github.com/jwalitptl/frontdesk-api/pkg/validator"
)

var (
	ErrIncompleteData = errors.New("incomplete data")
	ErrMissingFields  = errors.New("complete all fields")
)

type Service struct {
	repo      repository.ConsultationRepository
	patients  repository.PatientRepository
	operators *operator.Service
	drafts    *DraftStore
	validate  validator.Validator
	events    event.Emitter
}

func NewService(
	repo repository.ConsultationRepository,
	patients repository.PatientRepository,
	operators *operator.Service,
	drafts *DraftStore,
	events event.Emitter,
) *Service {
	return &Service{
		repo:      repo,
		patients:  patients,
		operators: operators,
		drafts:    drafts,
		validate:  validator.New(),
		events:    events,
	}
}

// Create stores one consultation authored by the session's operator. When
// imc is absent it is derived from height and weight. A draft_id attaches
// the draft's CIE-10 codes and consumes the draft.
func (s *Service) Create(ctx context.Context, sess *session.Session, req *model.ConsultationRequest) (*model.Consultation, error) {
	patient, op, err := s.resolve(ctx, sess, req.PatientID)
	if err != nil {
		return nil, err
	}

	c := &model.Consultation{
		PatientID:       patient.ID,
		OperatorID:      op.ID,
		Reason:          req.Reason,
		Symptoms:        req.Symptoms,
		Diagnosis:       req.Diagnosis,
		Treatment:       req.Treatment,
		Notes:           req.Notes,
		HeightCM:        req.HeightCM,
		WeightKG:        req.WeightKG,
		BMI:             req.BMI,
		Temperature:     req.Temperature,
		RespiratoryRate: req.RespiratoryRate,
		BloodPressure:   req.BloodPressure,
		HeartRate:       req.HeartRate,
	}
	if c.BMI == nil && c.HeightCM != nil && c.WeightKG != nil {
		if bmi, ok := BodyMassIndex(*c.HeightCM, *c.WeightKG); ok {
			c.BMI = &bmi
		}
	}

	if req.DraftID != "" {
		draft, err := s.drafts.Get(req.DraftID)
		if err != nil {
			return nil, err
		}
		c.Codes = draft.Codes
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}
	if req.DraftID != "" {
		s.drafts.Discard(req.DraftID)
	}

	event.Record(ctx, s.events, model.EventConsultationCreated, map[string]interface{}{
		"consulta_id": c.ID,
		"paciente_id": c.PatientID,
		"doctor_id":   c.OperatorID,
		"cie10":       len(c.Codes),
	})
	return c, nil
}

// CreateQuick is the modal variant. Any empty field rejects the whole form
// with a single notice.
func (s *Service) CreateQuick(ctx context.Context, sess *session.Session, req *model.QuickConsultationRequest) (*model.Consultation, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.BadRequest(ErrMissingFields.Error(), err)
	}
	return s.Create(ctx, sess, req.Form())
}

func (s *Service) History(ctx context.Context, patientID int64) ([]*model.ConsultationSummary, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	history, err := s.repo.History(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation history: %w", err)
	}
	return history, nil
}

// resolve loads both sides of the consultation. A patient or operator that
// cannot be found is reported as incomplete data; store failures pass through.
func (s *Service) resolve(ctx context.Context, sess *session.Session, patientID int64) (*model.Patient, *model.Operator, error) {
	if patientID <= 0 {
		return nil, nil, apperrors.BadRequest(ErrIncompleteData.Error(), ErrIncompleteData)
	}
	patient, err := s.patients.Get(ctx, patientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, apperrors.BadRequest(ErrIncompleteData.Error(), err)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get patient: %w", err)
	}

	op, err := s.operators.Current(ctx, sess)
	if apperrors.IsCode(err, apperrors.ErrNotFound) || apperrors.IsCode(err, apperrors.ErrUnauthorized) {
		return nil, nil, apperrors.BadRequest(ErrIncompleteData.Error(), err)
	}
	if err != nil {
		return nil, nil, err
	}
	return patient, op, nil
}
