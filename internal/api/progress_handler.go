// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/astral-academy/mastery-api/internal/api/shared"
	"github.com/astral-academy/mastery-api/internal/platform/logger"
	"github.com/astral-academy/mastery-api/internal/service/progress"
)

// LessonCompletedRequest is the body for POST /events/lesson-completed.
type LessonCompletedRequest struct {
	LearnerID string `json:"learner_id" validate:"required,uuid"`
	LessonID  string `json:"lesson_id"  validate:"required,uuid"`
}

// AssignmentGradedRequest is the body for POST /events/assignment-graded.
// Score is a pointer so an explicit 0 survives the required check.
type AssignmentGradedRequest struct {
	LearnerID    string `json:"learner_id"    validate:"required,uuid"`
	AssignmentID string `json:"assignment_id" validate:"required,uuid"`
	Score        *int   `json:"score"         validate:"required,min=0,max=100"`
}

// CourseCompletedRequest is the body for POST /events/course-completed.
type CourseCompletedRequest struct {
	LearnerID string `json:"learner_id" validate:"required,uuid"`
	CourseID  string `json:"course_id"  validate:"required,uuid"`
}

// ProgressHandler handles progression-related HTTP requests.
type ProgressHandler struct {
	progressService progress.ProgressService
	validate        *validator.Validate
	logger          *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService progress.ProgressService, log *slog.Logger) *ProgressHandler {
	if progressService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ProgressHandler{
		progressService: progressService,
		validate:        validator.New(),
		logger:          log.With(slog.String("component", "progress_handler")),
	}
}

// decodeAndValidate reads the JSON body into req and runs struct validation.
// It writes the error response itself and reports whether the caller should
// continue.
func (h *ProgressHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Debug("failed to decode request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		log.Debug("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}

	return true
}

// LessonCompleted handles POST /events/lesson-completed requests.
func (h *ProgressHandler) LessonCompleted(w http.ResponseWriter, r *http.Request) {
	var req LessonCompletedRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	// UUID format already validated
	learnerID := uuid.MustParse(req.LearnerID)
	lessonID := uuid.MustParse(req.LessonID)

	updated, err := h.progressService.OnLessonCompleted(r.Context(), learnerID, lessonID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EventAcceptedResponse{SkillsUpdated: updated})
}

// AssignmentGraded handles POST /events/assignment-graded requests.
func (h *ProgressHandler) AssignmentGraded(w http.ResponseWriter, r *http.Request) {
	var req AssignmentGradedRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	learnerID := uuid.MustParse(req.LearnerID)
	assignmentID := uuid.MustParse(req.AssignmentID)

	updated, err := h.progressService.OnAssignmentGraded(r.Context(), learnerID, assignmentID, *req.Score)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EventAcceptedResponse{SkillsUpdated: updated})
}

// CourseCompleted handles POST /events/course-completed requests.
func (h *ProgressHandler) CourseCompleted(w http.ResponseWriter, r *http.Request) {
	var req CourseCompletedRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	learnerID := uuid.MustParse(req.LearnerID)
	courseID := uuid.MustParse(req.CourseID)

	updated, err := h.progressService.OnCourseCompleted(r.Context(), learnerID, courseID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EventAcceptedResponse{SkillsUpdated: updated})
}

// GetProgressSummary handles GET /learners/{id}/progress requests.
func (h *ProgressHandler) GetProgressSummary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Debug("invalid learner ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid learner ID")
		return
	}

	summaries, err := h.progressService.GetProgressSummary(r.Context(), learnerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(learnerID.String(), summaries))
}
