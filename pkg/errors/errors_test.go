package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicdesk/booking-api/pkg/errors"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(errors.NotFound("clinic", nil)))
	assert.Equal(t, errors.ErrConflict, errors.CodeOf(errors.Conflict("taken", nil)))
	assert.Equal(t, errors.ErrInternal, errors.CodeOf(fmt.Errorf("plain")))

	// Wrapped AppErrors keep their code.
	wrapped := fmt.Errorf("context: %w", errors.IDMismatch())
	assert.Equal(t, errors.ErrIDMismatch, errors.CodeOf(wrapped))
}

func TestClassHelpers(t *testing.T) {
	assert.True(t, errors.IsNotFound(errors.NotFound("patient", nil)))
	assert.False(t, errors.IsNotFound(errors.Conflict("x", nil)))

	assert.True(t, errors.IsConflict(errors.Conflict("x", nil)))

	assert.True(t, errors.IsValidation(errors.InvalidReference()))
	assert.True(t, errors.IsValidation(errors.DoctorClinicMismatch()))
	assert.True(t, errors.IsValidation(errors.InvalidDuration()))
	assert.False(t, errors.IsValidation(errors.Conflict("x", nil)))
	assert.False(t, errors.IsValidation(errors.NotFound("x", nil)))
}

func TestErrorMessage(t *testing.T) {
	err := errors.Conflict("slot taken", fmt.Errorf("db says no"))
	assert.Equal(t, "slot taken: db says no", err.Error())
	assert.EqualError(t, errors.NotFound("clinic", nil), "clinic not found")
}
