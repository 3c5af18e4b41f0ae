package dto

import (
	"time"

	"gorm.io/datatypes"

	"essaylab_backend/internal/models"
)

// ApproveTrainingRequest - promotes a snapshot into the reference
// portfolio; the reviewer supplies the curation metadata.
type ApproveTrainingRequest struct {
	PerformanceScore int            `json:"performance_score" binding:"required,is-score"`
	KeyStrategies    datatypes.JSON `json:"key_strategies,omitempty"`
}

// RejectTrainingRequest - optional reviewer note
type RejectTrainingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// TrainingListQuery - review queue filter
type TrainingListQuery struct {
	Status string `form:"status,default=pending_review"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// TrainingEssayResponse - before/after snapshot view
type TrainingEssayResponse struct {
	ID             string                `json:"id"`
	EssayID        string                `json:"essay_id"`
	UserID         string                `json:"user_id"`
	EssayTitle     string                `json:"essay_title,omitempty"`
	BeforeContent  string                `json:"before_content"`
	AfterContent   string                `json:"after_content"`
	AppliedIDs     []string              `json:"applied_ids"`
	DismissedIDs   []string              `json:"dismissed_ids"`
	HasManualEdits bool                  `json:"has_manual_edits"`
	Status         models.TrainingStatus `json:"status"`
	ReviewedBy     *string               `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time            `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// TrainingListResponse - paginated review queue
type TrainingListResponse struct {
	Snapshots []TrainingEssayResponse `json:"snapshots"`
	Total     int64                   `json:"total"`
	Page      int                     `json:"page"`
	Limit     int                     `json:"limit"`
}
