package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsWrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewResourceNotFoundError("session not found"), ErrResourceNotFound},
		{"conflict", NewConflictError("username taken"), ErrResourceAlreadyExists},
		{"invalid state", NewInvalidStateError("session is not approved"), ErrInvalidState},
		{"forbidden", NewForbiddenError("not your session"), ErrPermissionDenied},
		{"unauthorized", NewUnauthorizedError("bad password"), ErrInvalidCredentials},
		{"validation", NewValidationError("duration", "must be positive"), ErrValidationFailed},
		{"bad request", NewBadRequestError("malformed"), ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)

			wrapped := fmt.Errorf("service: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewInvalidStateError("Session is not approved for payment"))
	assert.Equal(t, "Session is not approved for payment", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
}

func TestIs(t *testing.T) {
	err := NewForbiddenError("nope")
	assert.True(t, Is(err, ErrResourceNotFound, ErrPermissionDenied))
	assert.False(t, Is(err, ErrResourceNotFound, ErrInvalidState))
}

func TestCustomErrorText(t *testing.T) {
	assert.Equal(t, "resource not found", (&CustomError{Err: ErrResourceNotFound}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())

	custom := NewCustomError(ErrValidationFailed, "bad input").WithCode("VAL_001").WithDetails(map[string]interface{}{"field": "x"})
	assert.Equal(t, "VAL_001", custom.Code)
	assert.Equal(t, "x", custom.Details["field"])
}
