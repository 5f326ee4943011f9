package progress

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/domain"
	"github.com/astral-academy/mastery-api/internal/store"
)

// errFakeConflict simulates a transient serialization failure.
var errFakeConflict = errors.New("simulated serialization conflict")

type pairKey struct {
	learnerID uuid.UUID
	skillID   uuid.UUID
}

// fakeLedger is an in-memory Ledger for orchestrator tests. A single mutex
// serializes transactions the way row locks do in the real implementation,
// and conflictsRemaining injects transient failures to exercise the retry
// loop.
type fakeLedger struct {
	mu                 sync.Mutex
	knownSkills        map[uuid.UUID]bool
	progress           map[pairKey]*domain.SkillProgress
	history            []*domain.ProgressHistoryEntry
	conflictsRemaining int
}

func newFakeLedger(skillIDs ...uuid.UUID) *fakeLedger {
	known := make(map[uuid.UUID]bool, len(skillIDs))
	for _, id := range skillIDs {
		known[id] = true
	}
	return &fakeLedger{
		knownSkills: known,
		progress:    make(map[pairKey]*domain.SkillProgress),
	}
}

func (l *fakeLedger) InTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx LedgerTx) error,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conflictsRemaining > 0 {
		l.conflictsRemaining--
		return errFakeConflict
	}

	return fn(ctx, LedgerTx{
		Progress: &fakeProgressStore{ledger: l},
		History:  &fakeHistoryStore{ledger: l},
	})
}

func (l *fakeLedger) IsConflict(err error) bool {
	return errors.Is(err, errFakeConflict)
}

func (l *fakeLedger) Progress() store.SkillProgressStore {
	return &fakeProgressStore{ledger: l, locking: true}
}

func (l *fakeLedger) History() store.ProgressHistoryStore {
	return &fakeHistoryStore{ledger: l, locking: true}
}

// progressAt reads the committed progress value for a pair, or -1 if absent.
func (l *fakeLedger) progressAt(learnerID, skillID uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.progress[pairKey{learnerID, skillID}]
	if !ok {
		return -1
	}
	return record.Progress
}

func (l *fakeLedger) historyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

// fakeProgressStore implements store.SkillProgressStore against the ledger
// maps. The locking flag distinguishes the untransacted views, which must
// take the ledger mutex themselves.
type fakeProgressStore struct {
	ledger  *fakeLedger
	locking bool
}

var _ store.SkillProgressStore = (*fakeProgressStore)(nil)

func (s *fakeProgressStore) lock() func() {
	if !s.locking {
		return func() {}
	}
	s.ledger.mu.Lock()
	return s.ledger.mu.Unlock
}

func (s *fakeProgressStore) Get(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
) (*domain.SkillProgress, error) {
	defer s.lock()()
	record, ok := s.ledger.progress[pairKey{learnerID, skillID}]
	if !ok {
		return nil, store.ErrSkillProgressNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *fakeProgressStore) GetForUpdate(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
) (*domain.SkillProgress, error) {
	return s.Get(ctx, learnerID, skillID)
}

func (s *fakeProgressStore) EnsureExists(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
) error {
	defer s.lock()()
	if !s.ledger.knownSkills[skillID] {
		return store.ErrInvalidEntity
	}

	key := pairKey{learnerID, skillID}
	if _, ok := s.ledger.progress[key]; ok {
		return nil
	}

	record, err := domain.NewSkillProgress(learnerID, skillID)
	if err != nil {
		return err
	}
	s.ledger.progress[key] = record
	return nil
}

func (s *fakeProgressStore) Update(ctx context.Context, progress *domain.SkillProgress) error {
	if err := progress.Validate(); err != nil {
		return err
	}

	defer s.lock()()
	key := pairKey{progress.LearnerID, progress.SkillID}
	if _, ok := s.ledger.progress[key]; !ok {
		return store.ErrSkillProgressNotFound
	}
	copied := *progress
	s.ledger.progress[key] = &copied
	return nil
}

func (s *fakeProgressStore) ListByLearner(
	ctx context.Context,
	learnerID uuid.UUID,
) ([]*domain.SkillProgress, error) {
	defer s.lock()()
	var out []*domain.SkillProgress
	for key, record := range s.ledger.progress {
		if key.learnerID == learnerID {
			copied := *record
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SkillID.String() < out[j].SkillID.String()
	})
	return out, nil
}

func (s *fakeProgressStore) WithTx(tx *sql.Tx) store.SkillProgressStore {
	return s
}

// fakeHistoryStore implements store.ProgressHistoryStore against the ledger
// slice.
type fakeHistoryStore struct {
	ledger  *fakeLedger
	locking bool
}

var _ store.ProgressHistoryStore = (*fakeHistoryStore)(nil)

func (s *fakeHistoryStore) lock() func() {
	if !s.locking {
		return func() {}
	}
	s.ledger.mu.Lock()
	return s.ledger.mu.Unlock
}

func (s *fakeHistoryStore) Append(ctx context.Context, entry *domain.ProgressHistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	defer s.lock()()
	copied := *entry
	s.ledger.history = append(s.ledger.history, &copied)
	return nil
}

func (s *fakeHistoryStore) ListRecent(
	ctx context.Context,
	learnerID, skillID uuid.UUID,
	limit int,
) ([]*domain.ProgressHistoryEntry, error) {
	defer s.lock()()
	var out []*domain.ProgressHistoryEntry
	for i := len(s.ledger.history) - 1; i >= 0 && len(out) < limit; i-- {
		entry := s.ledger.history[i]
		if entry.LearnerID == learnerID && entry.SkillID == skillID {
			copied := *entry
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeHistoryStore) WithTx(tx *sql.Tx) store.ProgressHistoryStore {
	return s
}
