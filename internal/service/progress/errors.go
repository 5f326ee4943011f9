package progress

import "errors"

// Service-level errors returned by the progress service.
var (
	// ErrInvalidLearner is returned when the learner ID is missing or malformed.
	ErrInvalidLearner = errors.New("invalid learner ID")

	// ErrInvalidUnit is returned when the learning unit ID is missing or malformed.
	ErrInvalidUnit = errors.New("invalid learning unit ID")

	// ErrInvalidScore is returned when an assignment score is outside 0-100.
	ErrInvalidScore = errors.New("score must be between 0 and 100")

	// ErrCommitConflict is returned when concurrent updates of the same
	// (learner, skill) pair exhausted the bounded retry budget. The failure
	// is transient; the caller may retry the event.
	ErrCommitConflict = errors.New("progress commit conflict: retries exhausted")

	// ErrPartialUpdate is returned when at least one impacted skill could not
	// be committed. Skills are independent facts: successfully committed
	// skills are NOT rolled back, and the returned count reflects them.
	ErrPartialUpdate = errors.New("some skill updates failed")
)
