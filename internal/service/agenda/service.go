package agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/frontdesk-api/internal/repository"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	"github.com/jwalitptl/frontdesk-api/internal/session"
)

type Service struct {
	repo      repository.AppointmentRepository
	operators *operator.Service
	loc       *time.Location
	now       func() time.Time
}

// NewService reads appointment literals as wall-clock time in loc.
func NewService(repo repository.AppointmentRepository, operators *operator.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, operators: operators, loc: loc, now: time.Now}
}

func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Load snapshots the non-cancelled appointments of the session's operator,
// in schedule order.
func (s *Service) Load(ctx context.Context, sess *session.Session) (*Agenda, error) {
	op, err := s.operators.Current(ctx, sess)
	if err != nil {
		return nil, err
	}

	appointments, err := s.repo.ListForOperator(ctx, op.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	now := s.Now()
	rows := make([]*Row, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, newRow(a, s.loc, now))
	}
	return &Agenda{rows: rows}, nil
}
