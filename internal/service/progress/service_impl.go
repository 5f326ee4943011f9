package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
	"github.com/astral-academy/mastery-api/internal/domain/progression"
	"github.com/astral-academy/mastery-api/internal/platform/logger"
	"github.com/astral-academy/mastery-api/internal/taxonomy"
)

// Verify interface compliance at compile time
var _ ProgressService = (*progressServiceImpl)(nil)

// Options tunes the orchestrator's runtime behavior.
type Options struct {
	// MaxCommitRetries bounds the retry loop on per-row commit conflicts.
	// Values below 1 fall back to the default of 3.
	MaxCommitRetries int

	// HistoryLimit caps the recent history entries per skill in summaries.
	// Values below 1 fall back to the default of 10.
	HistoryLimit int
}

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	registry         *taxonomy.Registry
	ledger           Ledger
	calculator       progression.Service
	maxCommitRetries int
	historyLimit     int
	logger           *slog.Logger
}

// NewProgressService creates a new ProgressService implementation.
func NewProgressService(
	registry *taxonomy.Registry,
	ledger Ledger,
	calculator progression.Service,
	opts Options,
	log *slog.Logger,
) ProgressService {
	if registry == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("registry cannot be nil")
	}
	if ledger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("ledger cannot be nil")
	}
	if calculator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("calculator cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}
	if opts.MaxCommitRetries < 1 {
		opts.MaxCommitRetries = 3
	}
	if opts.HistoryLimit < 1 {
		opts.HistoryLimit = 10
	}

	return &progressServiceImpl{
		registry:         registry,
		ledger:           ledger,
		calculator:       calculator,
		maxCommitRetries: opts.MaxCommitRetries,
		historyLimit:     opts.HistoryLimit,
		logger:           log.With(slog.String("component", "progress_service")),
	}
}

// OnLessonCompleted implements ProgressService.OnLessonCompleted.
func (s *progressServiceImpl) OnLessonCompleted(
	ctx context.Context,
	learnerID, lessonID uuid.UUID,
) (int, error) {
	return s.handleEvent(ctx, learnerID, domain.UnitTypeLesson, lessonID,
		progression.Evidence{Source: domain.ProgressSourceLessonCompletion},
		fmt.Sprintf("Completed lesson %s", lessonID))
}

// OnAssignmentGraded implements ProgressService.OnAssignmentGraded.
func (s *progressServiceImpl) OnAssignmentGraded(
	ctx context.Context,
	learnerID, assignmentID uuid.UUID,
	score int,
) (int, error) {
	if score < 0 || score > 100 {
		return 0, ErrInvalidScore
	}

	return s.handleEvent(ctx, learnerID, domain.UnitTypeAssignment, assignmentID,
		progression.Evidence{Source: domain.ProgressSourceAssignmentCompletion, Score: score},
		fmt.Sprintf("Scored %d on assignment %s", score, assignmentID))
}

// OnCourseCompleted implements ProgressService.OnCourseCompleted.
func (s *progressServiceImpl) OnCourseCompleted(
	ctx context.Context,
	learnerID, courseID uuid.UUID,
) (int, error) {
	return s.handleEvent(ctx, learnerID, domain.UnitTypeCourse, courseID,
		progression.Evidence{Source: domain.ProgressSourceCourseCompletion},
		fmt.Sprintf("Completion bonus for course %s", courseID))
}

// handleEvent resolves the impacted skills for a learning unit and commits
// each one independently: a learning unit touching five skills produces five
// independent commit attempts, and failure on one does not roll back the
// others.
func (s *progressServiceImpl) handleEvent(
	ctx context.Context,
	learnerID uuid.UUID,
	unitType domain.UnitType,
	unitID uuid.UUID,
	evidence progression.Evidence,
	description string,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return 0, ErrInvalidLearner
	}
	if unitID == uuid.Nil {
		return 0, ErrInvalidUnit
	}

	impacts := s.registry.ImpactsOf(unitType, unitID)
	if len(impacts) == 0 {
		// Normal case: most units do not train a tracked skill.
		log.Debug("learning unit has no declared skill impacts",
			slog.String("unit_type", string(unitType)),
			slog.String("unit_id", unitID.String()),
			slog.String("learner_id", learnerID.String()))
		return 0, nil
	}

	updated := 0
	var failures []error
	for _, impact := range impacts {
		applied, err := s.applyImpact(ctx, learnerID, impact, evidence, description)
		if err != nil {
			log.Error("failed to commit skill update",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()),
				slog.String("skill_id", impact.SkillID.String()),
				slog.String("unit_id", unitID.String()))
			failures = append(failures, fmt.Errorf("skill %s: %w", impact.SkillID, err))
			continue
		}
		if applied {
			updated++
		}
	}

	if len(failures) > 0 {
		return updated, fmt.Errorf("%w: %w", ErrPartialUpdate, errors.Join(failures...))
	}

	log.Debug("learning event processed",
		slog.String("unit_type", string(unitType)),
		slog.String("unit_id", unitID.String()),
		slog.String("learner_id", learnerID.String()),
		slog.Int("skills_updated", updated))
	return updated, nil
}

// applyImpact commits the gain for a single skill, retrying a bounded number
// of times on transient concurrency conflicts. Returns whether the event
// changed state: a gated or fully-saturated event is accepted without a
// write and reports applied=false.
func (s *progressServiceImpl) applyImpact(
	ctx context.Context,
	learnerID uuid.UUID,
	impact *domain.LearningUnitImpact,
	evidence progression.Evidence,
	description string,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var lastErr error
	for attempt := 1; attempt <= s.maxCommitRetries; attempt++ {
		applied, err := s.tryCommit(ctx, learnerID, impact, evidence, description)
		if err == nil {
			return applied, nil
		}
		if !s.ledger.IsConflict(err) {
			return false, err
		}

		lastErr = err
		log.Debug("commit conflict, retrying with fresh read",
			slog.Int("attempt", attempt),
			slog.String("learner_id", learnerID.String()),
			slog.String("skill_id", impact.SkillID.String()))
	}

	return false, fmt.Errorf("%w: %v", ErrCommitConflict, lastErr)
}

// tryCommit performs one atomic read-compute-write cycle for a single
// (learner, skill) pair. The row lock taken by GetForUpdate serializes
// concurrent events on the same pair, so both gains land sequentially
// instead of one silently overwriting the other.
func (s *progressServiceImpl) tryCommit(
	ctx context.Context,
	learnerID uuid.UUID,
	impact *domain.LearningUnitImpact,
	evidence progression.Evidence,
	description string,
) (bool, error) {
	applied := false

	err := s.ledger.InTransaction(ctx, func(ctx context.Context, tx LedgerTx) error {
		if err := tx.Progress.EnsureExists(ctx, learnerID, impact.SkillID); err != nil {
			return fmt.Errorf("failed to ensure progress record: %w", err)
		}

		current, err := tx.Progress.GetForUpdate(ctx, learnerID, impact.SkillID)
		if err != nil {
			return fmt.Errorf("failed to read progress for update: %w", err)
		}

		result, err := s.calculator.ApplyImpact(current, impact, evidence)
		if err != nil {
			return fmt.Errorf("failed to calculate gain: %w", err)
		}

		// Accepted but no proficiency change: evidence gate failed or the
		// skill is already saturated. No state write, no history row.
		if result.AdjustedGain == 0 {
			return nil
		}

		previousProgress := current.Progress
		current.Progress = result.NewProgress
		current.CurrentLevel = result.NewLevel
		current.LastUpdatedAt = time.Now().UTC()

		if err := tx.Progress.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}

		entry, err := domain.NewProgressHistoryEntry(
			learnerID,
			impact.SkillID,
			previousProgress,
			result.NewProgress,
			evidence.Source,
			impact.UnitID,
			description,
		)
		if err != nil {
			return fmt.Errorf("failed to build history entry: %w", err)
		}

		if err := tx.History.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append history entry: %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

// GetProgressSummary implements ProgressService.GetProgressSummary.
func (s *progressServiceImpl) GetProgressSummary(
	ctx context.Context,
	learnerID uuid.UUID,
) ([]SkillSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}

	records, err := s.ledger.Progress().ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learner progress: %w", err)
	}

	summaries := make([]SkillSummary, 0, len(records))
	for _, record := range records {
		skill, ok := s.registry.Skill(record.SkillID)
		if !ok {
			// A skill removed from the taxonomy after progress was earned.
			// Keep the ledger intact but leave it out of the report.
			log.Warn("progress record references skill missing from taxonomy",
				slog.String("learner_id", learnerID.String()),
				slog.String("skill_id", record.SkillID.String()))
			continue
		}

		recent, err := s.ledger.History().ListRecent(ctx, learnerID, record.SkillID, s.historyLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list recent history: %w", err)
		}

		summaries = append(summaries, SkillSummary{
			SkillID:       skill.ID,
			SkillName:     skill.Name,
			Category:      skill.Category,
			CurrentLevel:  record.CurrentLevel,
			Progress:      record.Progress,
			RecentHistory: recent,
		})
	}

	return summaries, nil
}
