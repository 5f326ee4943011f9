package api

import (
	"errors"
	"net/http"

	"github.com/astral-academy/mastery-api/internal/service/progress"
	"github.com/astral-academy/mastery-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, progress.ErrInvalidLearner),
		errors.Is(err, progress.ErrInvalidUnit),
		errors.Is(err, progress.ErrInvalidScore),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrSkillNotFound),
		errors.Is(err, store.ErrSkillProgressNotFound):
		return http.StatusNotFound

	// Transient contention: the caller may retry the event
	case errors.Is(err, progress.ErrCommitConflict),
		errors.Is(err, progress.ErrPartialUpdate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, progress.ErrInvalidLearner):
		return "Invalid learner ID"

	case errors.Is(err, progress.ErrInvalidUnit):
		return "Invalid learning unit ID"

	case errors.Is(err, progress.ErrInvalidScore):
		return "Score must be between 0 and 100"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Referenced skill does not exist"

	case errors.Is(err, store.ErrSkillNotFound):
		return "Skill not found"

	case errors.Is(err, store.ErrSkillProgressNotFound):
		return "Skill progress not found"

	case errors.Is(err, progress.ErrCommitConflict),
		errors.Is(err, progress.ErrPartialUpdate):
		return "Some skill updates could not be committed; please retry"

	default:
		return "An unexpected error occurred"
	}
}
