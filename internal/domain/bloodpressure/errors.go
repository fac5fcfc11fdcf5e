package bloodpressure

import (
	"errors"
	"fmt"
)

// ErrInvalidRelationship is returned when the systolic value does not exceed
// the diastolic value.
var ErrInvalidRelationship = errors.New("systolic pressure must be greater than diastolic pressure")

// InvalidReadingError carries the rejected values. It unwraps to
// ErrInvalidRelationship.
type InvalidReadingError struct {
	Systolic  int
	Diastolic int
}

// Error implements the error interface.
func (e *InvalidReadingError) Error() string {
	return fmt.Sprintf("invalid reading %d/%d: %s", e.Systolic, e.Diastolic, ErrInvalidRelationship)
}

// Unwrap returns ErrInvalidRelationship.
func (e *InvalidReadingError) Unwrap() error {
	return ErrInvalidRelationship
}
