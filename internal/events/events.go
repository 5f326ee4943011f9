package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Learning event types understood by the progression engine.
const (
	TypeLessonCompleted  = "lesson.completed"
	TypeAssignmentGraded = "assignment.graded"
	TypeCourseCompleted  = "course.completed"
)

// LearningEvent represents one discrete learning occurrence: a lesson
// finished, an assignment scored, a course completed. The payload schema
// depends on the event type; see the payload types in the progress service.
type LearningEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants above
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *LearningEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewLearningEvent creates a new LearningEvent with the specified type and payload.
func NewLearningEvent(eventType string, payload interface{}) (*LearningEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &LearningEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *LearningEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows collaborators to publish events without direct knowledge of
// handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *LearningEvent) error
}
