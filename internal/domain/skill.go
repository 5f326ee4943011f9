package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Skill
var (
	ErrEmptySkillID       = errors.New("skill ID cannot be empty")
	ErrEmptySkillName     = errors.New("skill name cannot be empty")
	ErrEmptySkillCategory = errors.New("skill category cannot be empty")
)

// Skill is a tracked competency in the taxonomy (e.g., "linear regression").
// Skills are authored externally and immutable after creation; this engine
// only reads them.
type Skill struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSkill creates a skill with the given name and category.
func NewSkill(name, category string) (*Skill, error) {
	skill := &Skill{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}

	if err := skill.Validate(); err != nil {
		return nil, err
	}

	return skill, nil
}

// Validate checks if the Skill has valid data.
func (s *Skill) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySkillID
	}

	if s.Name == "" {
		return ErrEmptySkillName
	}

	if s.Category == "" {
		return ErrEmptySkillCategory
	}

	return nil
}
