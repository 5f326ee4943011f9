package progression

import (
	"github.com/astral-academy/mastery-api/internal/domain"
)

// Params defines all configurable parameters for the progression algorithm
type Params struct {
	// LevelDamping maps each mastery level to the multiplier applied to raw
	// gains earned at that level. Higher mastery must be harder to move.
	LevelDamping map[domain.MasteryLevel]float64

	// CeilingThreshold is the progress value above which the ceiling damping
	// multiplier kicks in, independent of level.
	CeilingThreshold int

	// CeilingDamping is the additional multiplier applied when current
	// progress exceeds CeilingThreshold.
	CeilingDamping float64

	// CourseBonusRatio is the fraction of a course impact's base gain awarded
	// as the flat course-completion bonus.
	CourseBonusRatio float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance
type ParamsConfig struct {
	// Level damping multipliers
	AwarenessDamping   float64
	KnowledgeDamping   float64
	ApplicationDamping float64
	MasteryDamping     float64
	ExpertiseDamping   float64

	// Ceiling behavior
	CeilingThreshold int
	CeilingDamping   float64

	// Course completion bonus
	CourseBonusRatio float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		// Diminishing returns as mastery grows
		LevelDamping: map[domain.MasteryLevel]float64{
			domain.MasteryLevelAwareness:   1.0,
			domain.MasteryLevelKnowledge:   0.8,
			domain.MasteryLevelApplication: 0.6,
			domain.MasteryLevelMastery:     0.4,
			domain.MasteryLevelExpertise:   0.2,
		},

		// Second deceleration near the cap
		CeilingThreshold: 80,
		CeilingDamping:   0.5,

		// Flat bonus on course completion
		CourseBonusRatio: 0.2,
	}
}

// NewParams creates a Params instance from the given config, falling back to
// defaults for zero-valued fields.
func NewParams(cfg ParamsConfig) *Params {
	params := NewDefaultParams()

	if cfg.AwarenessDamping > 0 {
		params.LevelDamping[domain.MasteryLevelAwareness] = cfg.AwarenessDamping
	}
	if cfg.KnowledgeDamping > 0 {
		params.LevelDamping[domain.MasteryLevelKnowledge] = cfg.KnowledgeDamping
	}
	if cfg.ApplicationDamping > 0 {
		params.LevelDamping[domain.MasteryLevelApplication] = cfg.ApplicationDamping
	}
	if cfg.MasteryDamping > 0 {
		params.LevelDamping[domain.MasteryLevelMastery] = cfg.MasteryDamping
	}
	if cfg.ExpertiseDamping > 0 {
		params.LevelDamping[domain.MasteryLevelExpertise] = cfg.ExpertiseDamping
	}

	if cfg.CeilingThreshold > 0 {
		params.CeilingThreshold = cfg.CeilingThreshold
	}
	if cfg.CeilingDamping > 0 {
		params.CeilingDamping = cfg.CeilingDamping
	}
	if cfg.CourseBonusRatio > 0 {
		params.CourseBonusRatio = cfg.CourseBonusRatio
	}

	return params
}
