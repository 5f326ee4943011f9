package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidUnitType is returned when a learning-unit type is not one of
	// lesson, assignment, or course.
	ErrInvalidUnitType = errors.New("invalid learning unit type")

	// ErrInvalidScore is returned when an assignment score is outside 0-100.
	ErrInvalidScore = errors.New("score must be between 0 and 100")

	// ErrInvalidProgressSource is returned when a history entry names an
	// unknown event source.
	ErrInvalidProgressSource = errors.New("invalid progress source")
)
