package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingInput struct {
	SessionID string `validate:"required"`
	Duration  int    `validate:"min=15"`
}

func TestHandleValidationError(t *testing.T) {
	v := validator.New()

	t.Run("single field", func(t *testing.T) {
		detail := HandleValidationError(v.Struct(bookingInput{Duration: 30}))
		assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
		assert.Equal(t, "SessionID", detail.Field)
		assert.Equal(t, "SessionID is required", detail.Message)
	})

	t.Run("several fields", func(t *testing.T) {
		detail := HandleValidationError(v.Struct(bookingInput{Duration: 5}))
		assert.Equal(t, "Validation failed", detail.Message)
		assert.Empty(t, detail.Field)

		list, ok := detail.Details.([]ErrorDetail)
		require.True(t, ok)
		require.Len(t, list, 2)
		assert.Equal(t, "Duration must be at least 15", list[1].Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		detail := HandleValidationError(errors.New("unexpected EOF"))
		assert.Equal(t, "Invalid request format", detail.Message)
		assert.Equal(t, "unexpected EOF", detail.Details)
	})
}

func TestErrorDetailEncoding(t *testing.T) {
	raw, err := json.Marshal(NewFailureResponse(NewErrorDetail(ErrorCodeInvalidState, "Session is not approved")))
	require.NoError(t, err)

	var body struct {
		Message string                 `json:"message"`
		Error   map[string]interface{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "Session is not approved", body.Message)
	assert.Equal(t, map[string]interface{}{"code": "RES_004", "message": "Session is not approved"}, body.Error)
}
