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

// PostgresTaxonomyStore implements the store.TaxonomyStore interface using a
// PostgreSQL database. The taxonomy tables are authored by the course
// platform and are strictly read-only here.
type PostgresTaxonomyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaxonomyStore creates a new PostgreSQL implementation of the
// TaxonomyStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaxonomyStore(db store.DBTX, logger *slog.Logger) *PostgresTaxonomyStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaxonomyStore{
		db:     db,
		logger: logger.With(slog.String("component", "taxonomy_store")),
	}
}

// Ensure PostgresTaxonomyStore implements store.TaxonomyStore
var _ store.TaxonomyStore = (*PostgresTaxonomyStore)(nil)

// GetSkill implements store.TaxonomyStore.GetSkill
func (s *PostgresTaxonomyStore) GetSkill(ctx context.Context, id uuid.UUID) (*domain.Skill, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, category, created_at
		FROM skills
		WHERE id = $1
	`
	var skill domain.Skill
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&skill.ID,
		&skill.Name,
		&skill.Category,
		&skill.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSkillNotFound
		}

		log.Error("failed to get skill",
			slog.String("error", err.Error()),
			slog.String("skill_id", id.String()))
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	return &skill, nil
}

// ListSkills implements store.TaxonomyStore.ListSkills
func (s *PostgresTaxonomyStore) ListSkills(ctx context.Context) ([]*domain.Skill, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, category, created_at
		FROM skills
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list skills", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var skills []*domain.Skill
	for rows.Next() {
		var skill domain.Skill
		if err := rows.Scan(
			&skill.ID,
			&skill.Name,
			&skill.Category,
			&skill.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		skills = append(skills, &skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skill rows: %w", err)
	}

	return skills, nil
}

// ListImpacts implements store.TaxonomyStore.ListImpacts
func (s *PostgresTaxonomyStore) ListImpacts(ctx context.Context) ([]*domain.LearningUnitImpact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, unit_type, unit_id, skill_id, base_gain, min_required_score
		FROM unit_skill_impacts
		ORDER BY unit_type, unit_id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list unit skill impacts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list unit skill impacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var impacts []*domain.LearningUnitImpact
	for rows.Next() {
		var impact domain.LearningUnitImpact
		if err := rows.Scan(
			&impact.ID,
			&impact.UnitType,
			&impact.UnitID,
			&impact.SkillID,
			&impact.BaseGain,
			&impact.MinRequiredScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan impact row: %w", err)
		}
		impacts = append(impacts, &impact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate impact rows: %w", err)
	}

	return impacts, nil
}
