package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("patient", nil), http.StatusNotFound},
		{BadRequest("missing birth date", nil), http.StatusBadRequest},
		{Unauthorized(nil), http.StatusUnauthorized},
		{Conflict("duplicate", nil), http.StatusConflict},
		{Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestAsUnwrapsChain(t *testing.T) {
	base := NotFound("operator", fmt.Errorf("sql: no rows in result set"))
	wrapped := fmt.Errorf("failed to resolve operator: %w", base)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "operator not found", appErr.Message)
	assert.True(t, IsCode(wrapped, ErrNotFound))
	assert.False(t, IsCode(wrapped, ErrConflict))
	assert.Contains(t, base.Error(), "no rows")
}
