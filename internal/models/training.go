package models

import (
	"time"

	"gorm.io/datatypes"
)

// TrainingEssay is a before/after snapshot of a completed editing session,
// a candidate for promotion into the reference-essay portfolio.
type TrainingEssay struct {
	BaseModel
	EssayID string `gorm:"not null;index"`
	UserID  string `gorm:"not null;index"`

	BeforeContent string `gorm:"type:text;not null"`
	AfterContent  string `gorm:"type:text;not null"`

	AppliedSuggestions   datatypes.JSON
	DismissedSuggestions datatypes.JSON
	HasManualEdits       bool

	Status     TrainingStatus `gorm:"type:varchar(20);not null;default:'pending_review'"`
	ReviewedBy *string
	ReviewedAt *time.Time

	Essay *Essay `gorm:"foreignKey:EssayID"`
}
