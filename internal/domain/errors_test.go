package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		field       string
		message     string
		err         error
		wantMessage string
		wantIs      []error
	}{
		{
			name:        "field with explicit sentinel",
			field:       "systolic",
			message:     "must be between 70 and 190",
			err:         ErrOutOfRange,
			wantMessage: "systolic must be between 70 and 190: value out of range",
			wantIs:      []error{ErrOutOfRange, ErrValidation},
		},
		{
			name:        "nil sentinel defaults to ErrValidation",
			field:       "diastolic",
			message:     "is required",
			err:         nil,
			wantMessage: "diastolic is required: validation failed",
			wantIs:      []error{ErrValidation},
		},
		{
			name:        "no field",
			field:       "",
			message:     "body could not be parsed",
			err:         ErrInvalidFormat,
			wantMessage: "invalid format: body could not be parsed",
			wantIs:      []error{ErrInvalidFormat, ErrValidation},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := NewValidationError(tc.field, tc.message, tc.err)

			assert.Equal(t, tc.wantMessage, err.Error())
			for _, target := range tc.wantIs {
				assert.True(t, errors.Is(err, target), "expected errors.Is(%v)", target)
			}

			wrapped := fmt.Errorf("handler: %w", err)
			var ve *ValidationError
			assert.True(t, errors.As(wrapped, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestValidationErrorDoesNotMatchUnrelated(t *testing.T) {
	t.Parallel()
	err := NewValidationError("systolic", "is required", nil)
	assert.False(t, errors.Is(err, ErrOutOfRange))
}
