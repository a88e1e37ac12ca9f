package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Is(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("Username must be at least 3 characters.")
	ve.Add("Password must be at least 6 characters.")

	assert.True(t, errors.Is(ve, ErrValidation))
	assert.False(t, errors.Is(ve, ErrConflict))
	assert.Equal(t, "Username must be at least 3 characters.; Password must be at least 6 characters.", ve.Error())

	ve.Conflict = true
	wrapped := fmt.Errorf("register: %w", ve)
	assert.True(t, errors.Is(wrapped, ErrConflict))
	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}

func TestMessages(t *testing.T) {
	ve := &ValidationError{Messages: []string{"a", "b"}}
	assert.Equal(t, []string{"a", "b"}, Messages(fmt.Errorf("wrap: %w", ve)))
	assert.Equal(t, []string{"invalid username or password"}, Messages(ErrInvalidCredentials))
}
