package api

import (
	"time"

	"github.com/astral-academy/mastery-api/internal/service/progress"
)

// EventAcceptedResponse reports how many skills a learning event updated.
// Zero is a normal outcome: the unit declared no impacts on tracked skills,
// or every impact was gated.
type EventAcceptedResponse struct {
	SkillsUpdated int `json:"skills_updated"`
}

// HistoryEntryResponse represents one audit row in a progress summary.
type HistoryEntryResponse struct {
	Delta            int       `json:"delta"`
	PreviousProgress int       `json:"previous_progress"`
	NewProgress      int       `json:"new_progress"`
	Source           string    `json:"source"`
	SourceID         string    `json:"source_id"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
}

// SkillSummaryResponse represents one skill's state in a progress summary.
type SkillSummaryResponse struct {
	SkillID       string                 `json:"skill_id"`
	SkillName     string                 `json:"skill_name"`
	Category      string                 `json:"category"`
	CurrentLevel  string                 `json:"current_level"`
	Progress      int                    `json:"progress"`
	RecentHistory []HistoryEntryResponse `json:"recent_history"`
}

// ProgressSummaryResponse is the full progress report for a learner.
type ProgressSummaryResponse struct {
	LearnerID string                 `json:"learner_id"`
	Skills    []SkillSummaryResponse `json:"skills"`
}

// summaryToResponse transforms service summaries into the response shape.
func summaryToResponse(learnerID string, summaries []progress.SkillSummary) ProgressSummaryResponse {
	skills := make([]SkillSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		history := make([]HistoryEntryResponse, 0, len(summary.RecentHistory))
		for _, entry := range summary.RecentHistory {
			history = append(history, HistoryEntryResponse{
				Delta:            entry.Delta,
				PreviousProgress: entry.PreviousProgress,
				NewProgress:      entry.NewProgress,
				Source:           string(entry.Source),
				SourceID:         entry.SourceID.String(),
				Description:      entry.Description,
				CreatedAt:        entry.CreatedAt,
			})
		}

		skills = append(skills, SkillSummaryResponse{
			SkillID:       summary.SkillID.String(),
			SkillName:     summary.SkillName,
			Category:      summary.Category,
			CurrentLevel:  string(summary.CurrentLevel),
			Progress:      summary.Progress,
			RecentHistory: history,
		})
	}

	return ProgressSummaryResponse{
		LearnerID: learnerID,
		Skills:    skills,
	}
}
