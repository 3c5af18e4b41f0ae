package dto

import (
	"time"

	"gorm.io/datatypes"

	"essaylab_backend/internal/models"
)

// CreateReferenceEssayRequest - manual portfolio entry
type CreateReferenceEssayRequest struct {
	Title            string         `json:"title" binding:"required,max=255"`
	Content          string         `json:"content" binding:"required"`
	CollegeID        *string        `json:"college_id,omitempty" binding:"omitempty,uuid"`
	ProgrammeID      *string        `json:"programme_id,omitempty" binding:"omitempty,uuid"`
	CustomCollege    string         `json:"custom_college,omitempty"`
	CustomProgramme  string         `json:"custom_programme,omitempty"`
	PerformanceScore int            `json:"performance_score" binding:"required,is-score"`
	KeyStrategies    datatypes.JSON `json:"key_strategies,omitempty"`
}

// UpdateReferenceEssayRequest - partial portfolio update
type UpdateReferenceEssayRequest struct {
	Title            *string        `json:"title,omitempty" binding:"omitempty,max=255"`
	Content          *string        `json:"content,omitempty"`
	CollegeID        *string        `json:"college_id,omitempty" binding:"omitempty,uuid"`
	ProgrammeID      *string        `json:"programme_id,omitempty" binding:"omitempty,uuid"`
	CustomCollege    *string        `json:"custom_college,omitempty"`
	CustomProgramme  *string        `json:"custom_programme,omitempty"`
	PerformanceScore *int           `json:"performance_score,omitempty" binding:"omitempty,is-score"`
	KeyStrategies    datatypes.JSON `json:"key_strategies,omitempty"`
}

// ParseReferenceEssayRequest - raw pasted/uploaded text for AI extraction
type ParseReferenceEssayRequest struct {
	RawText string `json:"raw_text" binding:"required"`
}

// ReferenceEssayResponse - portfolio view
type ReferenceEssayResponse struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	CollegeID        *string        `json:"college_id,omitempty"`
	ProgrammeID      *string        `json:"programme_id,omitempty"`
	CollegeName      string         `json:"college_name,omitempty"`
	ProgrammeName    string         `json:"programme_name,omitempty"`
	PerformanceScore int            `json:"performance_score"`
	KeyStrategies    datatypes.JSON `json:"key_strategies,omitempty"`
	WordCount        int            `json:"word_count"`
	Source           string         `json:"source"`
	CreatedAt        time.Time      `json:"created_at"`
}

// ReferenceEssayListResponse - paginated portfolio listing
type ReferenceEssayListResponse struct {
	Essays []ReferenceEssayResponse `json:"essays"`
	Total  int64                    `json:"total"`
	Page   int                      `json:"page"`
	Limit  int                      `json:"limit"`
}

// ParsedResumeResponse - structured resume fields extracted by the AI
type ParsedResumeResponse struct {
	FullName   string   `json:"full_name"`
	Education  []string `json:"education"`
	Activities []string `json:"activities"`
	Awards     []string `json:"awards"`
	Skills     []string `json:"skills"`
	RawText    string   `json:"raw_text,omitempty"`
}

// NewReferenceEssayResponse maps a portfolio row to its view.
func NewReferenceEssayResponse(e *models.SuccessfulEssay) ReferenceEssayResponse {
	resp := ReferenceEssayResponse{
		ID:               e.ID,
		Title:            e.Title,
		Content:          e.Content,
		CollegeID:        e.CollegeID,
		ProgrammeID:      e.ProgrammeID,
		CollegeName:      e.CustomCollege,
		ProgrammeName:    e.CustomProgramme,
		PerformanceScore: e.PerformanceScore,
		KeyStrategies:    e.KeyStrategies,
		WordCount:        e.WordCount,
		Source:           e.Source,
		CreatedAt:        e.CreatedAt,
	}
	if e.College != nil {
		resp.CollegeName = e.College.Name
	}
	if e.Programme != nil {
		resp.ProgrammeName = e.Programme.Name
	}
	return resp
}
