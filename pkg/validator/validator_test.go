package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"nombres" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Date  string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateReportsJSONNames(t *testing.T) {
	err := New().Validate(&sample{Email: "not-an-email", Date: "10/03/2025"})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ElementsMatch(t, []string{"nombres", "email", "fecha"}, vErr.Fields)
	assert.Contains(t, err.Error(), "nombres is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestValidateAcceptsCompleteStruct(t *testing.T) {
	assert.NoError(t, New().Validate(&sample{Name: "Ana", Email: "ana@example.com", Date: "2025-03-10"}))
}
