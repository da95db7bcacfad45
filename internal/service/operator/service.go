package operator

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
	"github.com/jwalitptl/frontdesk-api/internal/session"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
)

// ErrNoIdentity is returned when the session carries no operator email.
var ErrNoIdentity = errors.New("no operator identity in session")

type Service struct {
	repo repository.OperatorRepository
}

func NewService(repo repository.OperatorRepository) *Service {
	return &Service{repo: repo}
}

// Current resolves the operator whose email the session holds.
func (s *Service) Current(ctx context.Context, sess *session.Session) (*model.Operator, error) {
	email, ok := sess.Email()
	if !ok {
		return nil, apperrors.Unauthorized(ErrNoIdentity)
	}

	op, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("operator", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve operator: %w", err)
	}
	return op, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Operator, error) {
	op, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("operator", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	return op, nil
}

// Roster lists every operator, independent of who is asking.
func (s *Service) Roster(ctx context.Context) ([]*model.Operator, error) {
	ops, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	return ops, nil
}
