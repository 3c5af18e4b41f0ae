package dto

import (
	"time"

	"gorm.io/datatypes"

	"essaylab_backend/internal/models"
)

// CreateEssayRequest - new essay; target may reference catalog rows or be
// free-text names.
type CreateEssayRequest struct {
	Title           string         `json:"title" binding:"required,max=255"`
	Content         string         `json:"content"`
	CollegeID       *string        `json:"college_id,omitempty" binding:"omitempty,uuid"`
	ProgrammeID     *string        `json:"programme_id,omitempty" binding:"omitempty,uuid"`
	CustomCollege   string         `json:"custom_college,omitempty"`
	CustomProgramme string         `json:"custom_programme,omitempty"`
	CV              datatypes.JSON `json:"cv,omitempty"`
	Questionnaire   datatypes.JSON `json:"questionnaire,omitempty"`
}

// UpdateEssayRequest - metadata update; nil fields stay untouched
type UpdateEssayRequest struct {
	Title           *string             `json:"title,omitempty" binding:"omitempty,max=255"`
	Status          *models.EssayStatus `json:"status,omitempty" binding:"omitempty,is-essay-status"`
	CollegeID       *string             `json:"college_id,omitempty" binding:"omitempty,uuid"`
	ProgrammeID     *string             `json:"programme_id,omitempty" binding:"omitempty,uuid"`
	CustomCollege   *string             `json:"custom_college,omitempty"`
	CustomProgramme *string             `json:"custom_programme,omitempty"`
	CV              datatypes.JSON      `json:"cv,omitempty"`
	Questionnaire   datatypes.JSON      `json:"questionnaire,omitempty"`
}

// SaveContentRequest - auto-save payload
type SaveContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// EssayListQuery - listing filter
type EssayListQuery struct {
	Status string `form:"status" binding:"omitempty,is-essay-status"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// EssayResponse - full essay view with resolved target names
type EssayResponse struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	Title            string             `json:"title"`
	Content          string             `json:"content"`
	Status           models.EssayStatus `json:"status"`
	CollegeID        *string            `json:"college_id,omitempty"`
	ProgrammeID      *string            `json:"programme_id,omitempty"`
	CollegeName      string             `json:"college_name,omitempty"`
	ProgrammeName    string             `json:"programme_name,omitempty"`
	CV               datatypes.JSON     `json:"cv,omitempty"`
	Questionnaire    datatypes.JSON     `json:"questionnaire,omitempty"`
	CompletionStatus string             `json:"completion_status,omitempty"`
	WordCount        int                `json:"word_count"`
	LastEditedAt     time.Time          `json:"last_edited_at"`
	LastExportedAt   *time.Time         `json:"last_exported_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// EssaySummary - listing row without the content body
type EssaySummary struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Status        models.EssayStatus `json:"status"`
	CollegeName   string             `json:"college_name,omitempty"`
	ProgrammeName string             `json:"programme_name,omitempty"`
	WordCount     int                `json:"word_count"`
	LastEditedAt  time.Time          `json:"last_edited_at"`
	CreatedAt     time.Time          `json:"created_at"`
}

// EssayListResponse - paginated listing
type EssayListResponse struct {
	Essays []EssaySummary `json:"essays"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

// ScoreResponse - one scoring snapshot
type ScoreResponse struct {
	ID           string           `json:"id"`
	EssayID      string           `json:"essay_id"`
	ScoreType    models.ScoreType `json:"score_type"`
	Overall      int              `json:"overall"`
	Clarity      int              `json:"clarity"`
	Impact       int              `json:"impact"`
	Authenticity int              `json:"authenticity"`
	Coherence    int              `json:"coherence"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewScoreResponse maps a score row to its view.
func NewScoreResponse(s *models.EssayScore) ScoreResponse {
	return ScoreResponse{
		ID:           s.ID,
		EssayID:      s.EssayID,
		ScoreType:    s.ScoreType,
		Overall:      s.Overall,
		Clarity:      s.Clarity,
		Impact:       s.Impact,
		Authenticity: s.Authenticity,
		Coherence:    s.Coherence,
		CreatedAt:    s.CreatedAt,
	}
}
