package game

import (
	"errors"
	"strings"
)

// ErrValidation is the sentinel kind for rejected inputs.
var ErrValidation = errors.New("invalid input")

// ValidationError carries one message per violated constraint.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Unwrap lets callers match with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
