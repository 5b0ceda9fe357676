package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "single field",
			err:  NewValidationError("word", "required"),
			want: "invalid word: required",
		},
		{
			name: "every field is listed",
			err: NewValidationErrors([]FieldError{
				{Field: "word", Message: "required"},
				{Field: "difficulty", Message: "must be one of easy, medium, hard"},
			}),
			want: "invalid word: required; difficulty: must be one of easy, medium, hard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrValidation)
		})
	}
}

func TestValidationError_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("update word: %w", NewValidationError("word", "required"))

	var ve *ValidationError
	require.ErrorAs(t, wrapped, &ve)
	assert.Equal(t, "word", ve.Errors[0].Field)
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.False(t, errors.Is(wrapped, ErrConflict))
}
