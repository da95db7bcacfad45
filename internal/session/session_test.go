package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartsAbsent(t *testing.T) {
	email, ok := New().Email()
	assert.False(t, ok)
	assert.Empty(t, email)

	var nilSession *Session
	_, ok = nilSession.Email()
	assert.False(t, ok)
}

func TestSetEmailOnce(t *testing.T) {
	s := New()
	require.NoError(t, s.SetEmail(" dr.rios@clinica.bo "))

	email, ok := s.Email()
	assert.True(t, ok)
	assert.Equal(t, "dr.rios@clinica.bo", email)

	assert.ErrorIs(t, s.SetEmail("other@clinica.bo"), ErrAlreadySet)
	email, _ = s.Email()
	assert.Equal(t, "dr.rios@clinica.bo", email)
}

func TestSetEmailRejectsBlank(t *testing.T) {
	_, err := WithEmail("   ")
	assert.ErrorIs(t, err, ErrEmptyEmail)
}

func TestContextRoundTrip(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Panics(t, func() { MustFromContext(context.Background()) })

	s, err := WithEmail("dr.rios@clinica.bo")
	require.NoError(t, err)
	got, err := FromContext(NewContext(context.Background(), s))
	require.NoError(t, err)
	assert.Same(t, s, got)
}
