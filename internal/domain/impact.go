package domain

import (
	"errors"

	"github.com/google/uuid"
)

// UnitType identifies the kind of learning unit that can impact skills.
type UnitType string

// Possible learning unit types
const (
	UnitTypeLesson     UnitType = "lesson"
	UnitTypeAssignment UnitType = "assignment"
	UnitTypeCourse     UnitType = "course"
)

// IsValid reports whether the unit type is one of the known values.
func (t UnitType) IsValid() bool {
	switch t {
	case UnitTypeLesson, UnitTypeAssignment, UnitTypeCourse:
		return true
	}
	return false
}

// Common validation errors for LearningUnitImpact
var (
	ErrEmptyImpactUnitID    = errors.New("impact unit ID cannot be empty")
	ErrEmptyImpactSkillID   = errors.New("impact skill ID cannot be empty")
	ErrNonPositiveBaseGain  = errors.New("base gain must be greater than 0")
	ErrInvalidMinScore      = errors.New("minimum required score must be between 0 and 99")
	ErrMinScoreOutsideUsage = errors.New("minimum required score applies to assignments only")
)

// LearningUnitImpact declares that completing a learning unit trains a skill.
// Impacts are authored outside this engine and consumed as read-only
// configuration: a unit may declare impacts on zero or more skills.
type LearningUnitImpact struct {
	ID       uuid.UUID `json:"id"`
	UnitType UnitType  `json:"unit_type"`
	UnitID   uuid.UUID `json:"unit_id"`
	SkillID  uuid.UUID `json:"skill_id"`

	// BaseGain is the nominal proficiency points awarded on full credit.
	BaseGain int `json:"base_gain"`

	// MinRequiredScore applies to assignment impacts only: a graded score
	// below it grants no gain. Zero for lessons and courses.
	MinRequiredScore int `json:"min_required_score"`
}

// Validate checks if the LearningUnitImpact has valid data.
func (i *LearningUnitImpact) Validate() error {
	if !i.UnitType.IsValid() {
		return ErrInvalidUnitType
	}

	if i.UnitID == uuid.Nil {
		return ErrEmptyImpactUnitID
	}

	if i.SkillID == uuid.Nil {
		return ErrEmptyImpactSkillID
	}

	if i.BaseGain <= 0 {
		return ErrNonPositiveBaseGain
	}

	// The scaling denominator is 100-MinRequiredScore, so 100 is excluded.
	if i.MinRequiredScore < 0 || i.MinRequiredScore > 99 {
		return ErrInvalidMinScore
	}

	if i.MinRequiredScore > 0 && i.UnitType != UnitTypeAssignment {
		return ErrMinScoreOutsideUsage
	}

	return nil
}
