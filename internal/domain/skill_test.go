package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkill(t *testing.T) {
	t.Parallel() // Enable parallel execution
	skill, err := NewSkill("Linear Regression", "statistics")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, skill.ID)
	assert.Equal(t, "Linear Regression", skill.Name)
	assert.Equal(t, "statistics", skill.Category)
	assert.False(t, skill.CreatedAt.IsZero())

	_, err = NewSkill("", "statistics")
	assert.ErrorIs(t, err, ErrEmptySkillName)

	_, err = NewSkill("Linear Regression", "")
	assert.ErrorIs(t, err, ErrEmptySkillCategory)
}

func TestSkillValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	skill := &Skill{Name: "Linear Regression", Category: "statistics"}
	assert.ErrorIs(t, skill.Validate(), ErrEmptySkillID)

	skill.ID = uuid.New()
	assert.NoError(t, skill.Validate())
}
