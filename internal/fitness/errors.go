package fitness

import (
	"errors"
	"strings"

	"go.uber.org/multierr"
)

// Validation messages shown inline next to the form.
var (
	ErrNameRequired = errors.New("Please enter your name.")
	ErrInvalidAge   = errors.New("Please enter a valid age.")
	ErrNoGoal       = errors.New("Select at least 1 fitness goal.")
	ErrNoWorkout    = errors.New("Select a workout type.")
	ErrNoLevel      = errors.New("Select an experience level.")
)

// ValidationError reports input that was rejected locally, before any
// request was sent.
type ValidationError struct {
	Err error
}

// NewValidationError wraps one or more problems (combined with multierr).
func NewValidationError(err error) *ValidationError {
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems(), " ")
}

func (e *ValidationError) Unwrap() []error { return multierr.Errors(e.Err) }

// Problems returns each validation message in the order it was found.
func (e *ValidationError) Problems() []string {
	var out []string
	for _, err := range multierr.Errors(e.Err) {
		out = append(out, err.Error())
	}
	return out
}
