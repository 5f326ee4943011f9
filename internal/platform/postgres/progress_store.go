package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
	"github.com/astral-academy/mastery-api/internal/platform/logger"
	"github.com/astral-academy/mastery-api/internal/store"
)

// PostgresSkillProgressStore implements the store.SkillProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresSkillProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSkillProgressStore creates a new PostgreSQL implementation of
// the SkillProgressStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSkillProgressStore(db store.DBTX, logger *slog.Logger) *PostgresSkillProgressStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSkillProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "skill_progress_store")),
	}
}

// Ensure PostgresSkillProgressStore implements store.SkillProgressStore
var _ store.SkillProgressStore = (*PostgresSkillProgressStore)(nil)

const skillProgressColumns = `learner_id, skill_id, progress, current_level, last_updated_at, created_at`

// Get implements store.SkillProgressStore.Get
func (s *PostgresSkillProgressStore) Get(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
) (*domain.SkillProgress, error) {
	query := `
		SELECT ` + skillProgressColumns + `
		FROM skill_progress
		WHERE learner_id = $1 AND skill_id = $2
	`
	return s.scanOne(ctx, query, learnerID, skillID)
}

// GetForUpdate implements store.SkillProgressStore.GetForUpdate
// It acquires a row-level lock so concurrent updates of the same
// (learner, skill) pair serialize; rows for other pairs are unaffected.
func (s *PostgresSkillProgressStore) GetForUpdate(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
) (*domain.SkillProgress, error) {
	query := `
		SELECT ` + skillProgressColumns + `
		FROM skill_progress
		WHERE learner_id = $1 AND skill_id = $2
		FOR UPDATE
	`
	return s.scanOne(ctx, query, learnerID, skillID)
}

func (s *PostgresSkillProgressStore) scanOne(
	ctx context.Context,
	query string,
	learnerID, skillID uuid.UUID,
) (*domain.SkillProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var progress domain.SkillProgress
	err := s.db.QueryRowContext(ctx, query, learnerID, skillID).Scan(
		&progress.LearnerID,
		&progress.SkillID,
		&progress.Progress,
		&progress.CurrentLevel,
		&progress.LastUpdatedAt,
		&progress.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSkillProgressNotFound
		}

		log.Error("failed to get skill progress",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("skill_id", skillID.String()))
		return nil, fmt.Errorf("failed to get skill progress: %w", err)
	}

	return &progress, nil
}

// EnsureExists implements store.SkillProgressStore.EnsureExists
// The zero-state insert is race-safe: ON CONFLICT DO NOTHING lets concurrent
// creators for the same pair all succeed with exactly one resulting row.
func (s *PostgresSkillProgressStore) EnsureExists(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	zero, err := domain.NewSkillProgress(learnerID, skillID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO skill_progress (` + skillProgressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (learner_id, skill_id) DO NOTHING
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		zero.LearnerID,
		zero.SkillID,
		zero.Progress,
		zero.CurrentLevel,
		zero.LastUpdatedAt,
		zero.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during skill progress creation",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()),
				slog.String("skill_id", skillID.String()))
			return fmt.Errorf("%w: skill with ID %s not found",
				store.ErrInvalidEntity, skillID)
		}

		log.Error("failed to create skill progress",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("skill_id", skillID.String()))
		return fmt.Errorf("failed to create skill progress: %w", err)
	}

	return nil
}

// Update implements store.SkillProgressStore.Update
// It overwrites the mutable fields of an existing record after validating
// the entity, including the level/progress invariant.
func (s *PostgresSkillProgressStore) Update(
	ctx context.Context,
	progress *domain.SkillProgress,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("skill progress validation failed during update",
			slog.String("error", err.Error()),
			slog.String("learner_id", progress.LearnerID.String()),
			slog.String("skill_id", progress.SkillID.String()))
		return err
	}

	query := `
		UPDATE skill_progress
		SET progress = $1, current_level = $2, last_updated_at = $3
		WHERE learner_id = $4 AND skill_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		progress.Progress,
		progress.CurrentLevel,
		progress.LastUpdatedAt,
		progress.LearnerID,
		progress.SkillID,
	)
	if err != nil {
		log.Error("failed to update skill progress",
			slog.String("error", err.Error()),
			slog.String("learner_id", progress.LearnerID.String()),
			slog.String("skill_id", progress.SkillID.String()))
		return fmt.Errorf("failed to update skill progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrSkillProgressNotFound
	}

	return nil
}

// ListByLearner implements store.SkillProgressStore.ListByLearner
func (s *PostgresSkillProgressStore) ListByLearner(
	ctx context.Context,
	learnerID uuid.UUID,
) ([]*domain.SkillProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + skillProgressColumns + `
		FROM skill_progress
		WHERE learner_id = $1
		ORDER BY skill_id
	`
	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		log.Error("failed to list skill progress",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, fmt.Errorf("failed to list skill progress: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.SkillProgress
	for rows.Next() {
		var progress domain.SkillProgress
		if err := rows.Scan(
			&progress.LearnerID,
			&progress.SkillID,
			&progress.Progress,
			&progress.CurrentLevel,
			&progress.LastUpdatedAt,
			&progress.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan skill progress row: %w", err)
		}
		records = append(records, &progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skill progress rows: %w", err)
	}

	return records, nil
}

// WithTx implements store.SkillProgressStore.WithTx
func (s *PostgresSkillProgressStore) WithTx(tx *sql.Tx) store.SkillProgressStore {
	return &PostgresSkillProgressStore{
		db:     tx,
		logger: s.logger,
	}
}
