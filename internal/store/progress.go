package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
)

// SkillProgressStore defines the interface for skill progress persistence.
// The (learnerID, skillID) pair is the unique key for every record.
type SkillProgressStore interface {
	// Get retrieves a progress record without any row locking. It must not
	// be used on a path that intends to update the row.
	// Returns ErrSkillProgressNotFound if no record exists for the pair.
	Get(ctx context.Context, learnerID, skillID uuid.UUID) (*domain.SkillProgress, error)

	// GetForUpdate retrieves a progress record with a row-level lock using
	// SELECT FOR UPDATE. It must run inside a transaction; the lock
	// serializes concurrent updates of the same (learner, skill) pair while
	// leaving other pairs fully parallel.
	// Returns ErrSkillProgressNotFound if no record exists for the pair.
	GetForUpdate(ctx context.Context, learnerID, skillID uuid.UUID) (*domain.SkillProgress, error)

	// EnsureExists lazily creates the zero-state record for the pair if it
	// is absent. Creation is race-safe: concurrent callers for the same pair
	// all succeed and exactly one row results.
	// Returns ErrInvalidEntity if the skill does not exist.
	EnsureExists(ctx context.Context, learnerID, skillID uuid.UUID) error

	// Update overwrites the mutable fields of an existing progress record.
	// It handles domain validation internally.
	// Returns ErrSkillProgressNotFound if no record exists for the pair.
	Update(ctx context.Context, progress *domain.SkillProgress) error

	// ListByLearner returns all progress records for a learner, ordered by
	// skill ID for stable output.
	ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.SkillProgress, error)

	// WithTx returns a new SkillProgressStore instance bound to the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) SkillProgressStore
}
