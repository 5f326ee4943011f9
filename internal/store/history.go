package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
)

// ProgressHistoryStore defines the interface for the append-only audit trail
// of progress changes. Entries are written exactly once and never mutated or
// deleted.
type ProgressHistoryStore interface {
	// Append writes a new history entry. It handles domain validation
	// internally and must be called inside the same transaction as the
	// progress update it records.
	Append(ctx context.Context, entry *domain.ProgressHistoryEntry) error

	// ListRecent returns the most recent entries for a (learner, skill)
	// pair, newest first, capped at limit.
	ListRecent(
		ctx context.Context,
		learnerID, skillID uuid.UUID,
		limit int,
	) ([]*domain.ProgressHistoryEntry, error)

	// WithTx returns a new ProgressHistoryStore instance bound to the
	// provided transaction.
	WithTx(tx *sql.Tx) ProgressHistoryStore
}
