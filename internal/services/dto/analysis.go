package dto

import (
	"time"

	"essaylab_backend/internal/models"
)

// TriggerAnalysisRequest - starts an analysis run against the current
// content snapshot.
type TriggerAnalysisRequest struct {
	Content string `json:"content" binding:"required"`
}

// AnalysisResponse - analysis run state plus parsed suggestions
type AnalysisResponse struct {
	ID           string                `json:"id"`
	EssayID      string                `json:"essay_id"`
	Status       models.AnalysisStatus `json:"status"`
	ContentHash  string                `json:"content_hash"`
	Suggestions  []models.Suggestion   `json:"suggestions"`
	AppliedIDs   []string              `json:"applied_ids"`
	DismissedIDs []string              `json:"dismissed_ids"`
	Scores       *ScoreResponse        `json:"scores,omitempty"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Cached       bool                  `json:"cached"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// SessionResponse - per-essay analysis session state
type SessionResponse struct {
	EssayID     string              `json:"essay_id"`
	State       models.SessionState `json:"state"`
	AnalysisID  *string             `json:"analysis_id,omitempty"`
	TriggeredAt *time.Time          `json:"triggered_at,omitempty"`
}

// ApplySuggestionRequest - applies one suggestion to the current content.
// Content carries the client's view so stale offsets are rejected instead
// of corrupting the essay.
type ApplySuggestionRequest struct {
	SuggestionID string `json:"suggestion_id" binding:"required"`
	Content      string `json:"content" binding:"required"`
}

// DismissSuggestionRequest - marks one suggestion as rejected
type DismissSuggestionRequest struct {
	SuggestionID string `json:"suggestion_id" binding:"required"`
}

// ApplySuggestionResponse - patched content after a successful splice
type ApplySuggestionResponse struct {
	Content      string `json:"content"`
	SuggestionID string `json:"suggestion_id"`
}
