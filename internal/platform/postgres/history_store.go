package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
	"github.com/astral-academy/mastery-api/internal/platform/logger"
	"github.com/astral-academy/mastery-api/internal/store"
)

// PostgresProgressHistoryStore implements the store.ProgressHistoryStore
// interface using a PostgreSQL database as the storage backend. The table is
// append-only; there is deliberately no update or delete method.
type PostgresProgressHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressHistoryStore creates a new PostgreSQL implementation of
// the ProgressHistoryStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresProgressHistoryStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_history_store")),
	}
}

// Ensure PostgresProgressHistoryStore implements store.ProgressHistoryStore
var _ store.ProgressHistoryStore = (*PostgresProgressHistoryStore)(nil)

// Append implements store.ProgressHistoryStore.Append
func (s *PostgresProgressHistoryStore) Append(
	ctx context.Context,
	entry *domain.ProgressHistoryEntry,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("history entry validation failed during append",
			slog.String("error", err.Error()),
			slog.String("learner_id", entry.LearnerID.String()),
			slog.String("skill_id", entry.SkillID.String()))
		return err
	}

	query := `
		INSERT INTO progress_history (
			id, learner_id, skill_id, delta, previous_progress, new_progress,
			source, source_id, description, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.LearnerID,
		entry.SkillID,
		entry.Delta,
		entry.PreviousProgress,
		entry.NewProgress,
		entry.Source,
		entry.SourceID,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during history append",
				slog.String("error", err.Error()),
				slog.String("skill_id", entry.SkillID.String()))
			return fmt.Errorf("%w: skill with ID %s not found",
				store.ErrInvalidEntity, entry.SkillID)
		}

		log.Error("failed to append history entry",
			slog.String("error", err.Error()),
			slog.String("learner_id", entry.LearnerID.String()),
			slog.String("skill_id", entry.SkillID.String()))
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	return nil
}

// ListRecent implements store.ProgressHistoryStore.ListRecent
func (s *PostgresProgressHistoryStore) ListRecent(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
	limit int,
) ([]*domain.ProgressHistoryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, learner_id, skill_id, delta, previous_progress, new_progress,
		       source, source_id, description, created_at
		FROM progress_history
		WHERE learner_id = $1 AND skill_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, learnerID, skillID, limit)
	if err != nil {
		log.Error("failed to list history entries",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("skill_id", skillID.String()))
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.ProgressHistoryEntry
	for rows.Next() {
		var entry domain.ProgressHistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.LearnerID,
			&entry.SkillID,
			&entry.Delta,
			&entry.PreviousProgress,
			&entry.NewProgress,
			&entry.Source,
			&entry.SourceID,
			&entry.Description,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return entries, nil
}

// WithTx implements store.ProgressHistoryStore.WithTx
func (s *PostgresProgressHistoryStore) WithTx(tx *sql.Tx) store.ProgressHistoryStore {
	return &PostgresProgressHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}
