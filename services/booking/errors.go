package booking

import (
	"errors"
	"fmt"
)

// ErrNoAvailability means the slot cannot seat the party.
var ErrNoAvailability = errors.New("no tables available for the requested slot")

// ValidationError reports a reservation request that is missing required data.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
