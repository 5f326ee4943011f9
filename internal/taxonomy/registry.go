// Package taxonomy provides a typed, read-only view of the skill taxonomy:
// which skills exist and which learning units impact them. The registry is a
// snapshot loaded once at startup from the externally-managed mapping tables;
// it is immutable afterwards and safe for unlimited concurrent reads.
package taxonomy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
	"github.com/astral-academy/mastery-api/internal/store"
)

// impactKey identifies a learning unit within the registry.
type impactKey struct {
	unitType domain.UnitType
	unitID   uuid.UUID
}

// Registry holds the loaded taxonomy snapshot.
type Registry struct {
	skills  map[uuid.UUID]*domain.Skill
	impacts map[impactKey][]*domain.LearningUnitImpact
}

// Load reads the full taxonomy through the given store and builds the
// registry. Impact declarations that fail validation or reference an unknown
// skill are skipped with a warning rather than failing the load; the rest of
// the taxonomy remains usable.
func Load(ctx context.Context, taxonomyStore store.TaxonomyStore, log *slog.Logger) (*Registry, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "taxonomy_registry"))

	skills, err := taxonomyStore.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}

	impacts, err := taxonomyStore.ListImpacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load unit skill impacts: %w", err)
	}

	registry := &Registry{
		skills:  make(map[uuid.UUID]*domain.Skill, len(skills)),
		impacts: make(map[impactKey][]*domain.LearningUnitImpact, len(impacts)),
	}

	for _, skill := range skills {
		registry.skills[skill.ID] = skill
	}

	for _, impact := range impacts {
		if err := impact.Validate(); err != nil {
			log.Warn("skipping invalid impact declaration",
				slog.String("error", err.Error()),
				slog.String("impact_id", impact.ID.String()))
			continue
		}
		if _, ok := registry.skills[impact.SkillID]; !ok {
			log.Warn("skipping impact referencing unknown skill",
				slog.String("impact_id", impact.ID.String()),
				slog.String("skill_id", impact.SkillID.String()))
			continue
		}

		key := impactKey{unitType: impact.UnitType, unitID: impact.UnitID}
		registry.impacts[key] = append(registry.impacts[key], impact)
	}

	log.Info("taxonomy loaded",
		slog.Int("skills", len(registry.skills)),
		slog.Int("impact_declarations", len(impacts)))

	return registry, nil
}

// NewRegistry builds a registry directly from entities. Intended for tests
// and in-process collaborators that already hold the taxonomy.
func NewRegistry(skills []*domain.Skill, impacts []*domain.LearningUnitImpact) *Registry {
	registry := &Registry{
		skills:  make(map[uuid.UUID]*domain.Skill, len(skills)),
		impacts: make(map[impactKey][]*domain.LearningUnitImpact, len(impacts)),
	}
	for _, skill := range skills {
		registry.skills[skill.ID] = skill
	}
	for _, impact := range impacts {
		key := impactKey{unitType: impact.UnitType, unitID: impact.UnitID}
		registry.impacts[key] = append(registry.impacts[key], impact)
	}
	return registry
}

// ImpactsOf returns the declared skill impacts for a learning unit. A unit
// with no declared impacts returns an empty slice, not an error; most units
// do not train a tracked skill. The returned slice is a copy and safe for
// the caller to retain.
func (r *Registry) ImpactsOf(unitType domain.UnitType, unitID uuid.UUID) []*domain.LearningUnitImpact {
	declared := r.impacts[impactKey{unitType: unitType, unitID: unitID}]
	out := make([]*domain.LearningUnitImpact, len(declared))
	copy(out, declared)
	return out
}

// Skill returns the skill with the given ID, if known.
func (r *Registry) Skill(id uuid.UUID) (*domain.Skill, bool) {
	skill, ok := r.skills[id]
	return skill, ok
}

// SkillCount reports the number of skills in the snapshot.
func (r *Registry) SkillCount() int {
	return len(r.skills)
}
