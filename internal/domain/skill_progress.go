package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MasteryLevel is the discrete proficiency bucket derived from progress.
type MasteryLevel string

// Mastery levels, ordered from lowest to highest.
const (
	MasteryLevelAwareness   MasteryLevel = "awareness"
	MasteryLevelKnowledge   MasteryLevel = "knowledge"
	MasteryLevelApplication MasteryLevel = "application"
	MasteryLevelMastery     MasteryLevel = "mastery"
	MasteryLevelExpertise   MasteryLevel = "expertise"
)

// IsValid reports whether the mastery level is one of the known values.
func (l MasteryLevel) IsValid() bool {
	switch l {
	case MasteryLevelAwareness, MasteryLevelKnowledge, MasteryLevelApplication,
		MasteryLevelMastery, MasteryLevelExpertise:
		return true
	}
	return false
}

// Progress thresholds for mastery level derivation.
const (
	KnowledgeThreshold   = 20
	ApplicationThreshold = 40
	MasteryThreshold     = 70
	ExpertiseThreshold   = 90
)

// MasteryLevelFor derives the mastery level from a progress value. It is the
// single source of truth for the level/progress relationship: a stored
// SkillProgress must always satisfy CurrentLevel == MasteryLevelFor(Progress).
// The function is total; out-of-range inputs fall into the nearest bucket.
func MasteryLevelFor(progress int) MasteryLevel {
	switch {
	case progress >= ExpertiseThreshold:
		return MasteryLevelExpertise
	case progress >= MasteryThreshold:
		return MasteryLevelMastery
	case progress >= ApplicationThreshold:
		return MasteryLevelApplication
	case progress >= KnowledgeThreshold:
		return MasteryLevelKnowledge
	default:
		return MasteryLevelAwareness
	}
}

// Common validation errors for SkillProgress
var (
	ErrEmptyProgressLearnerID = errors.New("skill progress learner ID cannot be empty")
	ErrEmptyProgressSkillID   = errors.New("skill progress skill ID cannot be empty")
	ErrProgressOutOfRange     = errors.New("progress must be between 0 and 100")
	ErrLevelProgressMismatch  = errors.New("current level does not match progress")
)

// SkillProgress tracks a learner's proficiency in a single skill. There is
// exactly one record per (learner, skill) pair; it is created lazily at the
// zero state on the first event that touches the pair and never deleted.
type SkillProgress struct {
	LearnerID     uuid.UUID    `json:"learner_id"`
	SkillID       uuid.UUID    `json:"skill_id"`
	Progress      int          `json:"progress"`       // 0-100
	CurrentLevel  MasteryLevel `json:"current_level"`  // always MasteryLevelFor(Progress)
	LastUpdatedAt time.Time    `json:"last_updated_at"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewSkillProgress creates the zero-state record for a learner and skill.
func NewSkillProgress(learnerID, skillID uuid.UUID) (*SkillProgress, error) {
	now := time.Now().UTC()
	progress := &SkillProgress{
		LearnerID:     learnerID,
		SkillID:       skillID,
		Progress:      0,
		CurrentLevel:  MasteryLevelAwareness,
		LastUpdatedAt: now,
		CreatedAt:     now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the SkillProgress has valid data, including the
// invariant that the stored level matches the progress value.
func (p *SkillProgress) Validate() error {
	if p.LearnerID == uuid.Nil {
		return ErrEmptyProgressLearnerID
	}

	if p.SkillID == uuid.Nil {
		return ErrEmptyProgressSkillID
	}

	if p.Progress < 0 || p.Progress > 100 {
		return ErrProgressOutOfRange
	}

	if p.CurrentLevel != MasteryLevelFor(p.Progress) {
		return ErrLevelProgressMismatch
	}

	return nil
}
