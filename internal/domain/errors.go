// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is the root of all entity validation errors. Specific
	// validation errors wrap it so callers can match the whole family with
	// errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")
)
