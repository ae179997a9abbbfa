package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services, repositories and controllers.
var (
	ErrNotFound           = errors.New("not found")
	ErrSeatsExhausted     = errors.New("no seats left for this event")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicate          = errors.New("already exists")
)

// ValidationError lists every problem found in a request. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns nil when problems is empty.
func NewValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
