package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
	"github.com/jwalitptl/frontdesk-api/internal/service/event"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	"github.com/jwalitptl/frontdesk-api/internal/session"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
	"github.com/jwalitptl/frontdesk-api/pkg/security"
	"github.com/jwalitptl/frontdesk-api/pkg/validator"
)

var ErrBirthDateRequired = errors.New("birth date is required")

type Service struct {
	repo             repository.PatientRepository
	consultations    repository.ConsultationRepository
	operators        *operator.Service
	hasher           security.PasswordHasher
	validate         validator.Validator
	events           event.Emitter
	consultationPath string
	now              func() time.Time
}

func NewService(
	repo repository.PatientRepository,
	consultations repository.ConsultationRepository,
	operators *operator.Service,
	hasher security.PasswordHasher,
	events event.Emitter,
	consultationPath string,
) *Service {
	return &Service{
		repo:             repo,
		consultations:    consultations,
		operators:        operators,
		hasher:           hasher,
		validate:         validator.New(),
		events:           events,
		consultationPath: consultationPath,
		now:              time.Now,
	}
}

// Register creates a patient in the pending state and returns the follow-up
// consultation link for it.
func (s *Service) Register(ctx context.Context, req *model.CreatePatientRequest) (*model.CreatePatientResponse, error) {
	if strings.TrimSpace(req.BirthDate) == "" {
		return nil, apperrors.BadRequest(ErrBirthDateRequired.Error(), ErrBirthDateRequired)
	}
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	birth, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.BadRequest(err.Error(), err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	patient := &model.Patient{
		FirstNames:    strings.TrimSpace(req.FirstNames),
		LastNames:     strings.TrimSpace(req.LastNames),
		BirthDate:     birth,
		GenderID:      req.GenderID,
		Status:        model.PatientStatusPending,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		CardNumber:    strings.TrimSpace(req.CardNumber),
		FamilyHistory: req.FamilyHistory,
		Occupation:    req.Occupation,
		Email:         strings.TrimSpace(req.Email),
		PasswordHash:  hash,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	event.Record(ctx, s.events, model.EventPatientCreated, map[string]interface{}{
		"paciente_id": patient.ID,
		"estado":      patient.Status,
	})

	return &model.CreatePatientResponse{
		ID:              patient.ID,
		ConsultationURL: s.ConsultationURL(patient.ID),
	}, nil
}

func (s *Service) ConsultationURL(patientID int64) string {
	return fmt.Sprintf("%s?paciente_id=%d", s.consultationPath, patientID)
}

// ListForOperator returns the active and pending patients the session's
// operator has seen in at least one consultation, filtered by query.
func (s *Service) ListForOperator(ctx context.Context, sess *session.Session, query string) ([]*model.PatientListItem, error) {
	op, err := s.operators.Current(ctx, sess)
	if err != nil {
		return nil, err
	}

	ids, err := s.consultations.PatientIDsForOperator(ctx, op.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operator patients: %w", err)
	}
	if len(ids) == 0 {
		return []*model.PatientListItem{}, nil
	}

	patients, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	now := s.now()
	items := make([]*model.PatientListItem, 0, len(patients))
	for _, p := range Search(patients, query) {
		items = append(items, &model.PatientListItem{Patient: p, Age: p.Age(now)})
	}
	return items, nil
}

// Search keeps the patients whose names, occupation or contact number
// contain query, ignoring case. An empty query keeps everything.
func Search(patients []*model.Patient, query string) []*model.Patient {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return patients
	}

	out := make([]*model.Patient, 0, len(patients))
	for _, p := range patients {
		for _, field := range []string{p.FirstNames, p.LastNames, p.Occupation, p.ContactNumber} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

func (s *Service) Header(ctx context.Context, id int64) (*model.PatientHeader, error) {
	h, err := s.repo.GetHeader(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient header: %w", err)
	}
	return h, nil
}

// Update rewrites the record selected by req.Email. The email itself, the
// status and the password are never written through this path.
func (s *Service) Update(ctx context.Context, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	birth, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByEmail(ctx, &model.Patient{
		FirstNames:    strings.TrimSpace(req.FirstNames),
		LastNames:     strings.TrimSpace(req.LastNames),
		BirthDate:     birth,
		GenderID:      req.GenderID,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		FamilyHistory: req.FamilyHistory,
		Occupation:    req.Occupation,
		Email:         strings.TrimSpace(req.Email),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	event.Record(ctx, s.events, model.EventPatientUpdated, map[string]interface{}{
		"paciente_id": updated.ID,
	})
	return updated, nil
}

// SoftDelete marks the patient inactive and returns the row as stored. No
// row is ever removed.
func (s *Service) SoftDelete(ctx context.Context, id int64) (*model.Patient, error) {
	p, err := s.repo.SetStatus(ctx, id, model.PatientStatusInactive)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate patient: %w", err)
	}

	event.Record(ctx, s.events, model.EventPatientDeactivated, map[string]interface{}{
		"paciente_id": p.ID,
		"estado":      p.Status,
	})
	return p, nil
}

func parseBirthDate(v string) (time.Time, error) {
	t, err := time.Parse(model.BirthDateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, apperrors.BadRequest("fecha_nacimiento must be a date (YYYY-MM-DD)", err)
	}
	return t, nil
}
