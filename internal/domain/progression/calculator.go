package progression

import (
	"github.com/astral-academy/mastery-api/internal/domain"
)

// floatGuard compensates for products like 5*0.6 evaluating to 2.999...
// before truncation; it is far below the 1-point resolution of gains.
const floatGuard = 1e-9

// calculateRawGain determines the pre-damping gain for an impact and the
// evidence that triggered it.
//
// Lesson completion awards the full base gain; completion itself is the
// evidence. Assignment gains are gated on the minimum required score and
// scaled linearly across the passing range. Course completion awards a flat
// bonus fraction of the base gain, independent of whatever the learner
// already earned from the course's lessons and assignments.
func calculateRawGain(
	impact *domain.LearningUnitImpact,
	evidence Evidence,
	params *Params,
) int {
	switch evidence.Source {
	case domain.ProgressSourceLessonCompletion:
		return impact.BaseGain

	case domain.ProgressSourceAssignmentCompletion:
		// Evidence gate: a failing score produces no gain, not an error.
		if evidence.Score < impact.MinRequiredScore {
			return 0
		}

		// Integer arithmetic truncates, matching the floor in the policy.
		raw := impact.BaseGain * (evidence.Score - impact.MinRequiredScore) /
			(100 - impact.MinRequiredScore)
		if raw < 0 {
			return 0
		}
		if raw > impact.BaseGain {
			return impact.BaseGain
		}
		return raw

	case domain.ProgressSourceCourseCompletion:
		return int(float64(impact.BaseGain)*params.CourseBonusRatio + floatGuard)

	default:
		return 0
	}
}

// applyDamping reduces a raw gain according to the learner's current level
// and proximity to the progress ceiling.
//
// The floor rule guarantees that a real, passing event always moves the
// needle: whenever damping would truncate a positive raw gain below 1, the
// adjusted gain is 1 instead. A raw gain of exactly 0 stays 0.
func applyDamping(
	rawGain int,
	currentLevel domain.MasteryLevel,
	currentProgress int,
	params *Params,
) int {
	if rawGain <= 0 {
		return 0
	}

	damped := float64(rawGain) * params.LevelDamping[currentLevel]

	if currentProgress > params.CeilingThreshold {
		damped *= params.CeilingDamping
	}

	adjusted := int(damped + floatGuard)
	if adjusted < 1 {
		return 1
	}
	return adjusted
}
