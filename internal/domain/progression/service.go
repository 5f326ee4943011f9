package progression

import (
	"errors"

	"github.com/astral-academy/mastery-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress     = errors.New("skill progress cannot be nil")
	ErrNilImpact       = errors.New("learning unit impact cannot be nil")
	ErrInvalidSource   = errors.New("invalid progress source")
	ErrScoreOutOfRange = errors.New("score must be between 0 and 100")
)

// Evidence carries the proof that a learning event occurred. For assignment
// events the graded score is the evidence; for lesson and course events
// completion itself is the evidence and Score is ignored.
type Evidence struct {
	Source domain.ProgressSource
	Score  int
}

// Result is the outcome of applying one impact to one skill's state.
type Result struct {
	// AdjustedGain is the bounded, level-adjusted gain actually applied.
	// Zero means the event was accepted but produced no proficiency change.
	AdjustedGain int

	// NewProgress is the clamped progress value after applying the gain.
	NewProgress int

	// NewLevel is the mastery level derived from NewProgress.
	NewLevel domain.MasteryLevel
}

// Service defines the interface for progression gain calculations
type Service interface {
	// ApplyImpact computes the adjusted gain for a single skill given the
	// learner's current state, the declared impact, and the event evidence.
	// It never mutates its inputs.
	ApplyImpact(
		progress *domain.SkillProgress,
		impact *domain.LearningUnitImpact,
		evidence Evidence,
	) (Result, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new progression service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new progression service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyImpact implements the Service interface.
func (s *defaultService) ApplyImpact(
	progress *domain.SkillProgress,
	impact *domain.LearningUnitImpact,
	evidence Evidence,
) (Result, error) {
	if progress == nil {
		return Result{}, ErrNilProgress
	}
	if impact == nil {
		return Result{}, ErrNilImpact
	}
	if !evidence.Source.IsValid() {
		return Result{}, ErrInvalidSource
	}
	if evidence.Source == domain.ProgressSourceAssignmentCompletion &&
		(evidence.Score < 0 || evidence.Score > 100) {
		return Result{}, ErrScoreOutOfRange
	}

	rawGain := calculateRawGain(impact, evidence, s.params)
	adjustedGain := applyDamping(rawGain, progress.CurrentLevel, progress.Progress, s.params)

	newProgress := progress.Progress + adjustedGain
	if newProgress > 100 {
		newProgress = 100
		adjustedGain = 100 - progress.Progress
	}

	return Result{
		AdjustedGain: adjustedGain,
		NewProgress:  newProgress,
		NewLevel:     domain.MasteryLevelFor(newProgress),
	}, nil
}
