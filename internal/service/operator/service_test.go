package operator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
	"github.com/jwalitptl/frontdesk-api/internal/session"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
)

type memOperators struct {
	byID map[int64]*model.Operator
	err  error
}

func (m *memOperators) GetByEmail(_ context.Context, email string) (*model.Operator, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, op := range m.byID {
		if op.Email == email {
			return op, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memOperators) Get(_ context.Context, id int64) (*model.Operator, error) {
	if op, ok := m.byID[id]; ok {
		return op, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memOperators) List(context.Context) ([]*model.Operator, error) {
	out := make([]*model.Operator, 0, len(m.byID))
	for _, op := range m.byID {
		out = append(out, op)
	}
	return out, nil
}

func newRepo() *memOperators {
	return &memOperators{byID: map[int64]*model.Operator{
		1: {ID: 1, FirstNames: "Rosa", LastNames: "Rios", Email: "rosa@clinica.bo"},
	}}
}

func TestCurrentResolvesSessionEmail(t *testing.T) {
	sess, err := session.WithEmail("rosa@clinica.bo")
	require.NoError(t, err)

	op, err := NewService(newRepo()).Current(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, int64(1), op.ID)
}

func TestCurrentWithoutIdentity(t *testing.T) {
	_, err := NewService(newRepo()).Current(context.Background(), session.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestCurrentUnknownEmail(t *testing.T) {
	sess, _ := session.WithEmail("nobody@clinica.bo")
	_, err := NewService(newRepo()).Current(context.Background(), sess)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestCurrentStoreFailureIsNotClassified(t *testing.T) {
	repo := newRepo()
	repo.err = errors.New("connection reset")
	sess, _ := session.WithEmail("rosa@clinica.bo")

	_, err := NewService(repo).Current(context.Background(), sess)
	require.Error(t, err)
	_, ok := apperrors.As(err)
	assert.False(t, ok)
}

func TestRosterAndGet(t *testing.T) {
	svc := NewService(newRepo())

	ops, err := svc.Roster(context.Background())
	require.NoError(t, err)
	assert.Len(t, ops, 1)

	_, err = svc.Get(context.Background(), 99)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}
