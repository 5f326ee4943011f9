package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astral-academy/mastery-api/internal/domain"
	"github.com/astral-academy/mastery-api/internal/domain/progression"
	"github.com/astral-academy/mastery-api/internal/taxonomy"
)

// fixture bundles a service wired against the fake ledger with a small
// taxonomy: one lesson impacting two skills, one gated assignment, and one
// course, all training skills in the "data analysis" category.
type fixture struct {
	service   ProgressService
	ledger    *fakeLedger
	learnerID uuid.UUID

	skillA uuid.UUID
	skillB uuid.UUID

	lessonID     uuid.UUID
	assignmentID uuid.UUID
	courseID     uuid.UUID
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	skillA, err := domain.NewSkill("Linear Regression", "data analysis")
	require.NoError(t, err)
	skillB, err := domain.NewSkill("Data Visualization", "data analysis")
	require.NoError(t, err)

	f := &fixture{
		learnerID:    uuid.New(),
		skillA:       skillA.ID,
		skillB:       skillB.ID,
		lessonID:     uuid.New(),
		assignmentID: uuid.New(),
		courseID:     uuid.New(),
	}

	impacts := []*domain.LearningUnitImpact{
		{
			ID:       uuid.New(),
			UnitType: domain.UnitTypeLesson,
			UnitID:   f.lessonID,
			SkillID:  f.skillA,
			BaseGain: 10,
		},
		{
			ID:       uuid.New(),
			UnitType: domain.UnitTypeLesson,
			UnitID:   f.lessonID,
			SkillID:  f.skillB,
			BaseGain: 4,
		},
		{
			ID:               uuid.New(),
			UnitType:         domain.UnitTypeAssignment,
			UnitID:           f.assignmentID,
			SkillID:          f.skillA,
			BaseGain:         10,
			MinRequiredScore: 60,
		},
		{
			ID:       uuid.New(),
			UnitType: domain.UnitTypeCourse,
			UnitID:   f.courseID,
			SkillID:  f.skillA,
			BaseGain: 25,
		},
	}

	registry := taxonomy.NewRegistry([]*domain.Skill{skillA, skillB}, impacts)
	f.ledger = newFakeLedger(f.skillA, f.skillB)
	f.service = NewProgressService(registry, f.ledger, progression.NewDefaultService(), opts, nil)

	return f
}

func TestOnLessonCompletedUpdatesImpactedSkills(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})

	updated, err := f.service.OnLessonCompleted(context.Background(), f.learnerID, f.lessonID)
	require.NoError(t, err)

	assert.Equal(t, 2, updated)
	assert.Equal(t, 10, f.ledger.progressAt(f.learnerID, f.skillA))
	assert.Equal(t, 4, f.ledger.progressAt(f.learnerID, f.skillB))
	assert.Equal(t, 2, f.ledger.historyCount(), "each applied update writes one audit row")
}

func TestOnLessonCompletedUnknownUnitIsANoOp(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})

	updated, err := f.service.OnLessonCompleted(context.Background(), f.learnerID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, updated)
	assert.Equal(t, 0, f.ledger.historyCount())
}

func TestEventValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.service.OnLessonCompleted(ctx, uuid.Nil, f.lessonID)
	assert.ErrorIs(t, err, ErrInvalidLearner)

	_, err = f.service.OnLessonCompleted(ctx, f.learnerID, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidUnit)

	_, err = f.service.OnAssignmentGraded(ctx, f.learnerID, f.assignmentID, -1)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = f.service.OnAssignmentGraded(ctx, f.learnerID, f.assignmentID, 101)
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = f.service.GetProgressSummary(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidLearner)
}

func TestOnAssignmentGradedBelowMinimumWritesNothing(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})

	updated, err := f.service.OnAssignmentGraded(
		context.Background(), f.learnerID, f.assignmentID, 50)
	require.NoError(t, err, "a failing score is a normal outcome, not an error")

	assert.Equal(t, 0, updated)
	assert.Equal(t, 0, f.ledger.historyCount())
	// The zero-state record is still created lazily by the attempt.
	assert.Equal(t, 0, f.ledger.progressAt(f.learnerID, f.skillA))
}

func TestOnAssignmentGradedScalesWithScore(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})

	// Base 10, min 60, score 80: 10 * (80-60)/(100-60) = 5, no damping at
	// awareness.
	updated, err := f.service.OnAssignmentGraded(
		context.Background(), f.learnerID, f.assignmentID, 80)
	require.NoError(t, err)

	assert.Equal(t, 1, updated)
	assert.Equal(t, 5, f.ledger.progressAt(f.learnerID, f.skillA))
	assert.Equal(t, 1, f.ledger.historyCount())
}

func TestOnCourseCompletedAwardsFlatBonus(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})

	// Base 25 at the default bonus ratio awards 5 points.
	updated, err := f.service.OnCourseCompleted(context.Background(), f.learnerID, f.courseID)
	require.NoError(t, err)

	assert.Equal(t, 1, updated)
	assert.Equal(t, 5, f.ledger.progressAt(f.learnerID, f.skillA))
}

func TestReplayedEventDoubleApplies(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})
	ctx := context.Background()

	// The service performs no deduplication; emitting the same completion
	// twice legitimately counts twice.
	_, err := f.service.OnLessonCompleted(ctx, f.learnerID, f.lessonID)
	require.NoError(t, err)
	_, err = f.service.OnLessonCompleted(ctx, f.learnerID, f.lessonID)
	require.NoError(t, err)

	assert.Equal(t, 20, f.ledger.progressAt(f.learnerID, f.skillA))
	assert.Equal(t, 4, f.ledger.historyCount())
}

func TestCommitRetriesOnTransientConflict(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{MaxCommitRetries: 3})
	f.ledger.conflictsRemaining = 2

	updated, err := f.service.OnCourseCompleted(context.Background(), f.learnerID, f.courseID)
	require.NoError(t, err, "two conflicts fit inside a budget of three attempts")

	assert.Equal(t, 1, updated)
	assert.Equal(t, 5, f.ledger.progressAt(f.learnerID, f.skillA))
}

func TestCommitRetryExhaustionReportsConflict(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{MaxCommitRetries: 3})
	f.ledger.conflictsRemaining = 10

	updated, err := f.service.OnCourseCompleted(context.Background(), f.learnerID, f.courseID)

	assert.Equal(t, 0, updated)
	assert.ErrorIs(t, err, ErrPartialUpdate)
	assert.ErrorIs(t, err, ErrCommitConflict)
}

func TestPartialFailureCountsSuccesses(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})

	// Drop skillB from the ledger so its lazy creation fails while skillA
	// still commits. Skills are independent facts; the success stands.
	f.ledger.mu.Lock()
	delete(f.ledger.knownSkills, f.skillB)
	f.ledger.mu.Unlock()

	updated, err := f.service.OnLessonCompleted(context.Background(), f.learnerID, f.lessonID)

	assert.Equal(t, 1, updated)
	assert.ErrorIs(t, err, ErrPartialUpdate)
	assert.Equal(t, 10, f.ledger.progressAt(f.learnerID, f.skillA))
	assert.Equal(t, -1, f.ledger.progressAt(f.learnerID, f.skillB))
	assert.Equal(t, 1, f.ledger.historyCount())
}

func TestConcurrentEventsOnSamePairBothLand(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.OnLessonCompleted(ctx, f.learnerID, f.lessonID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Both gains land sequentially: 0 -> 10 -> 20. Lost updates would leave
	// the pair at 10.
	assert.Equal(t, 20, f.ledger.progressAt(f.learnerID, f.skillA))
	assert.Equal(t, 8, f.ledger.progressAt(f.learnerID, f.skillB))
	assert.Equal(t, 4, f.ledger.historyCount())
}

func TestGetProgressSummary(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{HistoryLimit: 10})
	ctx := context.Background()

	_, err := f.service.OnLessonCompleted(ctx, f.learnerID, f.lessonID)
	require.NoError(t, err)
	_, err = f.service.OnAssignmentGraded(ctx, f.learnerID, f.assignmentID, 100)
	require.NoError(t, err)

	summaries, err := f.service.GetProgressSummary(ctx, f.learnerID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := make(map[uuid.UUID]SkillSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.SkillID] = summary
	}

	skillA := byID[f.skillA]
	assert.Equal(t, "Linear Regression", skillA.SkillName)
	assert.Equal(t, "data analysis", skillA.Category)
	assert.Equal(t, 20, skillA.Progress, "lesson gain plus full-credit assignment gain")
	assert.Equal(t, domain.MasteryLevelKnowledge, skillA.CurrentLevel)
	require.Len(t, skillA.RecentHistory, 2)
	// Newest first.
	assert.Equal(t, domain.ProgressSourceAssignmentCompletion, skillA.RecentHistory[0].Source)
	assert.Equal(t, domain.ProgressSourceLessonCompletion, skillA.RecentHistory[1].Source)

	skillB := byID[f.skillB]
	assert.Equal(t, 4, skillB.Progress)
	assert.Equal(t, domain.MasteryLevelAwareness, skillB.CurrentLevel)
	require.Len(t, skillB.RecentHistory, 1)
}

func TestGetProgressSummaryEmptyForUnknownLearner(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})

	summaries, err := f.service.GetProgressSummary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestGetProgressSummarySkipsSkillsMissingFromTaxonomy(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.service.OnLessonCompleted(ctx, f.learnerID, f.lessonID)
	require.NoError(t, err)

	// Plant a progress record for a skill the registry does not know about,
	// simulating a skill removed from the taxonomy after progress was earned.
	orphanSkill := uuid.New()
	orphan, err := domain.NewSkillProgress(f.learnerID, orphanSkill)
	require.NoError(t, err)
	f.ledger.mu.Lock()
	f.ledger.progress[pairKey{f.learnerID, orphanSkill}] = orphan
	f.ledger.mu.Unlock()

	summaries, err := f.service.GetProgressSummary(ctx, f.learnerID)
	require.NoError(t, err)
	assert.Len(t, summaries, 2, "orphaned progress stays in the ledger but out of the report")
}

func TestNewProgressServicePanicsOnMissingDependencies(t *testing.T) {
	t.Parallel() // Enable parallel execution
	f := newFixture(t, Options{})
	registry := taxonomy.NewRegistry(nil, nil)

	assert.Panics(t, func() {
		NewProgressService(nil, f.ledger, progression.NewDefaultService(), Options{}, nil)
	})
	assert.Panics(t, func() {
		NewProgressService(registry, nil, progression.NewDefaultService(), Options{}, nil)
	})
	assert.Panics(t, func() {
		NewProgressService(registry, f.ledger, nil, Options{}, nil)
	})
}
