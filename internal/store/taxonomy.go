package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
)

// TaxonomyStore defines read-only access to the externally-managed taxonomy
// tables: the skill registry and the unit-to-skill impact declarations. This
// engine never writes to them.
type TaxonomyStore interface {
	// GetSkill retrieves a skill by ID.
	// Returns ErrSkillNotFound if the skill does not exist.
	GetSkill(ctx context.Context, id uuid.UUID) (*domain.Skill, error)

	// ListSkills returns all skills, ordered by name.
	ListSkills(ctx context.Context) ([]*domain.Skill, error)

	// ListImpacts returns every declared learning-unit impact.
	ListImpacts(ctx context.Context) ([]*domain.LearningUnitImpact, error)
}
