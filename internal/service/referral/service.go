package referral

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jwalitptl/frontdesk-api/internal/email"
	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
	"github.com/jwalitptl/frontdesk-api/internal/service/event"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	"github.com/jwalitptl/frontdesk-api/internal/session"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
	"github.com/jwalitptl/frontdesk-api/pkg/validator"
)

// Service derives a patient to another operator by mail.
type Service struct {
	operators *operator.Service
	patients  repository.PatientRepository
	mailer    email.Service
	validate  validator.Validator
	events    event.Emitter
}

func NewService(operators *operator.Service, patients repository.PatientRepository, mailer email.Service, events event.Emitter) *Service {
	return &Service{
		operators: operators,
		patients:  patients,
		mailer:    mailer,
		validate:  validator.New(),
		events:    events,
	}
}

func (s *Service) Send(ctx context.Context, sess *session.Session, req *model.ReferralRequest) error {
	if err := s.validate.Validate(req); err != nil {
		return apperrors.BadRequest(err.Error(), err)
	}

	from, err := s.operators.Current(ctx, sess)
	if err != nil {
		return err
	}
	to, err := s.operators.Get(ctx, req.OperatorID)
	if err != nil {
		return err
	}
	if to.Email == "" {
		return apperrors.BadRequest("operator has no email address", nil)
	}

	patient, err := s.patients.Get(ctx, req.PatientID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("patient", err)
	}
	if err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}

	subject, body := compose(from, patient, req.Message)
	if err := s.mailer.SendCustom(ctx, to.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send referral: %w", err)
	}

	event.Record(ctx, s.events, model.EventConsultationReferred, map[string]interface{}{
		"paciente_id": patient.ID,
		"from":        from.ID,
		"to":          to.ID,
	})
	return nil
}

func compose(from *model.Operator, patient *model.Patient, message string) (string, string) {
	subject := "Derivación: " + patient.DisplayName()

	var b strings.Builder
	fmt.Fprintf(&b, "%s le deriva al paciente %s", from.DisplayName(), patient.DisplayName())
	if patient.CardNumber != "" {
		fmt.Fprintf(&b, " (CI %s)", patient.CardNumber)
	}
	b.WriteString(".\n\n")
	b.WriteString(strings.TrimSpace(message))
	b.WriteString("\n")
	return subject, b.String()
}
