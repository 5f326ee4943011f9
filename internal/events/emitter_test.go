package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures delivered events and optionally fails.
type recordingHandler struct {
	received []*LearningEvent
	err      error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *LearningEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func TestNewLearningEvent(t *testing.T) {
	t.Parallel() // Enable parallel execution
	type payload struct {
		LessonID string `json:"lesson_id"`
	}

	event, err := NewLearningEvent(TypeLessonCompleted, payload{LessonID: "abc"})
	require.NoError(t, err)

	assert.Equal(t, TypeLessonCompleted, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var decoded payload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, "abc", decoded.LessonID)
}

func TestEmitEventDeliversToAllHandlers(t *testing.T) {
	t.Parallel() // Enable parallel execution
	emitter := NewInMemoryEventEmitter(nil)
	first := &recordingHandler{}
	second := &recordingHandler{}
	emitter.RegisterHandler(first)
	emitter.RegisterHandler(second)

	event, err := NewLearningEvent(TypeCourseCompleted, map[string]string{"course_id": "x"})
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), event))
	assert.Len(t, first.received, 1)
	assert.Len(t, second.received, 1)
}

func TestEmitEventContinuesPastFailingHandler(t *testing.T) {
	t.Parallel() // Enable parallel execution
	emitter := NewInMemoryEventEmitter(nil)
	handlerErr := errors.New("handler exploded")
	failing := &recordingHandler{err: handlerErr}
	healthy := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(healthy)

	event, err := NewLearningEvent(TypeAssignmentGraded, map[string]int{"score": 90})
	require.NoError(t, err)

	err = emitter.EmitEvent(context.Background(), event)
	assert.ErrorIs(t, err, handlerErr, "first handler error is surfaced")
	assert.Len(t, healthy.received, 1, "later handlers still receive the event")
}

func TestEmitEventWithoutHandlers(t *testing.T) {
	t.Parallel() // Enable parallel execution
	emitter := NewInMemoryEventEmitter(nil)

	event, err := NewLearningEvent(TypeLessonCompleted, nil)
	require.NoError(t, err)

	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}
