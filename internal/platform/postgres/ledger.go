package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/astral-academy/mastery-api/internal/service/progress"
	"github.com/astral-academy/mastery-api/internal/store"
)

// Ledger implements progress.Ledger on PostgreSQL, pairing the skill
// progress store with the history store under one transaction boundary.
type Ledger struct {
	db       *sql.DB
	progress *PostgresSkillProgressStore
	history  *PostgresProgressHistoryStore
}

// NewLedger creates a PostgreSQL-backed progress ledger.
// If logger is nil, a default logger will be used.
func NewLedger(db *sql.DB, logger *slog.Logger) *Ledger {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	return &Ledger{
		db:       db,
		progress: NewPostgresSkillProgressStore(db, logger),
		history:  NewPostgresProgressHistoryStore(db, logger),
	}
}

// Ensure Ledger implements progress.Ledger
var _ progress.Ledger = (*Ledger)(nil)

// InTransaction implements progress.Ledger.InTransaction
func (l *Ledger) InTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx progress.LedgerTx) error,
) error {
	return store.RunInTransaction(ctx, l.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, progress.LedgerTx{
			Progress: l.progress.WithTx(tx),
			History:  l.history.WithTx(tx),
		})
	})
}

// IsConflict implements progress.Ledger.IsConflict
func (l *Ledger) IsConflict(err error) bool {
	return IsRetryableConflict(err)
}

// Progress implements progress.Ledger.Progress
func (l *Ledger) Progress() store.SkillProgressStore {
	return l.progress
}

// History implements progress.Ledger.History
func (l *Ledger) History() store.ProgressHistoryStore {
	return l.history
}
