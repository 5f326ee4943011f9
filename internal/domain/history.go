package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProgressSource identifies the kind of event that produced a progress change.
type ProgressSource string

// Possible progress sources
const (
	ProgressSourceLessonCompletion     ProgressSource = "lesson_completion"
	ProgressSourceAssignmentCompletion ProgressSource = "assignment_completion"
	ProgressSourceCourseCompletion     ProgressSource = "course_completion"
)

// IsValid reports whether the progress source is one of the known values.
func (s ProgressSource) IsValid() bool {
	switch s {
	case ProgressSourceLessonCompletion, ProgressSourceAssignmentCompletion,
		ProgressSourceCourseCompletion:
		return true
	}
	return false
}

// Common validation errors for ProgressHistoryEntry
var (
	ErrEmptyHistoryLearnerID = errors.New("history entry learner ID cannot be empty")
	ErrEmptyHistorySkillID   = errors.New("history entry skill ID cannot be empty")
	ErrEmptyHistorySourceID  = errors.New("history entry source ID cannot be empty")
	ErrHistoryDeltaMismatch  = errors.New("history entry delta does not match progress values")
)

// ProgressHistoryEntry is an immutable audit row recording one accepted
// progress update. Entries are written exactly once alongside the state
// change that produced them and exist for observability and dispute
// resolution ("why did my skill jump 3%?").
type ProgressHistoryEntry struct {
	ID               uuid.UUID      `json:"id"`
	LearnerID        uuid.UUID      `json:"learner_id"`
	SkillID          uuid.UUID      `json:"skill_id"`
	Delta            int            `json:"delta"`
	PreviousProgress int            `json:"previous_progress"`
	NewProgress      int            `json:"new_progress"`
	Source           ProgressSource `json:"source"`
	SourceID         uuid.UUID      `json:"source_id"`
	Description      string         `json:"description"`
	CreatedAt        time.Time      `json:"created_at"`
}

// NewProgressHistoryEntry creates an audit row for an accepted update.
func NewProgressHistoryEntry(
	learnerID, skillID uuid.UUID,
	previousProgress, newProgress int,
	source ProgressSource,
	sourceID uuid.UUID,
	description string,
) (*ProgressHistoryEntry, error) {
	entry := &ProgressHistoryEntry{
		ID:               uuid.New(),
		LearnerID:        learnerID,
		SkillID:          skillID,
		Delta:            newProgress - previousProgress,
		PreviousProgress: previousProgress,
		NewProgress:      newProgress,
		Source:           source,
		SourceID:         sourceID,
		Description:      description,
		CreatedAt:        time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the ProgressHistoryEntry has valid data.
func (e *ProgressHistoryEntry) Validate() error {
	if e.LearnerID == uuid.Nil {
		return ErrEmptyHistoryLearnerID
	}

	if e.SkillID == uuid.Nil {
		return ErrEmptyHistorySkillID
	}

	if !e.Source.IsValid() {
		return ErrInvalidProgressSource
	}

	if e.SourceID == uuid.Nil {
		return ErrEmptyHistorySourceID
	}

	if e.Delta != e.NewProgress-e.PreviousProgress {
		return ErrHistoryDeltaMismatch
	}

	return nil
}
