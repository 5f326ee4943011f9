package progress

import (
	"context"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
	"github.com/astral-academy/mastery-api/internal/store"
)

// LedgerTx bundles the transaction-bound stores available inside one atomic
// ledger update.
type LedgerTx struct {
	Progress store.SkillProgressStore
	History  store.ProgressHistoryStore
}

// Ledger is the durable store of current skill state plus immutable history.
// The service defines the interface it consumes; the PostgreSQL
// implementation lives in internal/platform/postgres.
type Ledger interface {
	// InTransaction runs fn with transaction-bound stores. Everything fn
	// does is committed atomically when it returns nil and discarded when it
	// returns an error: a state update and its history row can never be
	// applied separately.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error

	// IsConflict reports whether err from InTransaction is a transient
	// concurrency conflict worth retrying with a fresh read.
	IsConflict(err error) bool

	// Progress returns an untransacted view for reads.
	Progress() store.SkillProgressStore

	// History returns an untransacted view for reads.
	History() store.ProgressHistoryStore
}

// SkillSummary is one row of a learner's progress report.
type SkillSummary struct {
	SkillID       uuid.UUID                      `json:"skill_id"`
	SkillName     string                         `json:"skill_name"`
	Category      string                         `json:"category"`
	CurrentLevel  domain.MasteryLevel            `json:"current_level"`
	Progress      int                            `json:"progress"`
	RecentHistory []*domain.ProgressHistoryEntry `json:"recent_history"`
}

// ProgressService converts discrete learning events into bounded, auditable
// updates of a learner's skill proficiency.
//
// Each entry point returns the number of skills successfully updated. A unit
// with no declared skill impacts is a normal outcome: success with count 0.
// Impacted skills are processed independently; when some commits fail the
// count reflects the successes and the error wraps ErrPartialUpdate.
//
// The service does NOT deduplicate events. Callers are responsible for
// emitting each completion event at most once; a replayed event double-counts
// progress.
type ProgressService interface {
	// OnLessonCompleted records that a learner finished a lesson. Completion
	// itself is the evidence; every impacted skill receives its full base
	// gain before damping.
	OnLessonCompleted(ctx context.Context, learnerID, lessonID uuid.UUID) (int, error)

	// OnAssignmentGraded records a scored assignment (0-100). Impacts whose
	// minimum required score exceeds the grade produce no change, which is
	// not an error.
	OnAssignmentGraded(ctx context.Context, learnerID, assignmentID uuid.UUID, score int) (int, error)

	// OnCourseCompleted records that a learner finished a course and awards
	// the flat completion bonus on each impacted skill, on top of whatever
	// the learner already earned from the course's lessons and assignments.
	OnCourseCompleted(ctx context.Context, learnerID, courseID uuid.UUID) (int, error)

	// GetProgressSummary reports the learner's current state for every skill
	// they have progress in, including the most recent history entries per
	// skill. A learner with no recorded progress yields an empty summary.
	GetProgressSummary(ctx context.Context, learnerID uuid.UUID) ([]SkillSummary, error)
}
