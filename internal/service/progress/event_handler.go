package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/events"
)

// Payload schemas for the learning events this handler understands.

// LessonCompletedPayload is the payload for events.TypeLessonCompleted.
type LessonCompletedPayload struct {
	LearnerID uuid.UUID `json:"learner_id"`
	LessonID  uuid.UUID `json:"lesson_id"`
}

// AssignmentGradedPayload is the payload for events.TypeAssignmentGraded.
type AssignmentGradedPayload struct {
	LearnerID    uuid.UUID `json:"learner_id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	Score        int       `json:"score"`
}

// CourseCompletedPayload is the payload for events.TypeCourseCompleted.
type CourseCompletedPayload struct {
	LearnerID uuid.UUID `json:"learner_id"`
	CourseID  uuid.UUID `json:"course_id"`
}

// Verify interface compliance at compile time
var _ events.EventHandler = (*EventHandler)(nil)

// EventHandler adapts the progress service to the learning-event bus so
// in-process collaborators can emit events without importing this package's
// service types.
type EventHandler struct {
	service ProgressService
	logger  *slog.Logger
}

// NewEventHandler creates an EventHandler backed by the given service.
func NewEventHandler(service ProgressService, log *slog.Logger) *EventHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &EventHandler{
		service: service,
		logger:  log.With(slog.String("component", "progress_event_handler")),
	}
}

// HandleEvent implements events.EventHandler. Unknown event types are ignored
// so the bus can carry events this engine does not care about.
func (h *EventHandler) HandleEvent(ctx context.Context, event *events.LearningEvent) error {
	switch event.Type {
	case events.TypeLessonCompleted:
		var payload LessonCompletedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to decode lesson completed payload: %w", err)
		}
		_, err := h.service.OnLessonCompleted(ctx, payload.LearnerID, payload.LessonID)
		return err

	case events.TypeAssignmentGraded:
		var payload AssignmentGradedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to decode assignment graded payload: %w", err)
		}
		_, err := h.service.OnAssignmentGraded(ctx, payload.LearnerID, payload.AssignmentID, payload.Score)
		return err

	case events.TypeCourseCompleted:
		var payload CourseCompletedPayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to decode course completed payload: %w", err)
		}
		_, err := h.service.OnCourseCompleted(ctx, payload.LearnerID, payload.CourseID)
		return err

	default:
		h.logger.Debug("ignoring event of unhandled type",
			slog.String("event_type", event.Type),
			slog.String("event_id", event.ID.String()))
		return nil
	}
}
