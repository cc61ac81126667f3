package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the base error every entity validation failure wraps.
	// Callers that do not care which field failed can match on this alone.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDifficulty is returned when a difficulty label is not one of
	// the fixed set (easy, medium, hard).
	ErrInvalidDifficulty = fmt.Errorf("%w: invalid difficulty level", ErrValidation)
)
