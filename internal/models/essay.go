package models

import (
	"time"

	"gorm.io/datatypes"
)

// Essay is a writer-owned document. College/programme may reference the
// lookup tables or be free-text names for targets not in the catalog.
type Essay struct {
	BaseModel
	UserID  string      `gorm:"not null;index"`
	Title   string      `gorm:"not null"`
	Content string      `gorm:"type:text;not null"`
	Status  EssayStatus `gorm:"type:varchar(20);not null;default:'draft'"`

	CollegeID       *string
	ProgrammeID     *string
	CustomCollege   string
	CustomProgramme string

	// Optional attachments captured from the questionnaire/CV flows.
	CV            datatypes.JSON
	Questionnaire datatypes.JSON

	CompletionStatus string
	LastEditedAt     time.Time `gorm:"autoUpdateTime:false"`
	LastExportedAt   *time.Time

	// Relations
	College   *College   `gorm:"foreignKey:CollegeID"`
	Programme *Programme `gorm:"foreignKey:ProgrammeID"`
	Scores    []EssayScore `gorm:"foreignKey:EssayID"`
}

// EssayScore is an append-only scoring snapshot.
type EssayScore struct {
	BaseModel
	EssayID      string    `gorm:"not null;index"`
	ScoreType    ScoreType `gorm:"type:varchar(20);not null"`
	Overall      int       `gorm:"not null"`
	Clarity      int
	Impact       int
	Authenticity int
	Coherence    int
	Model        string
}

// EssayAnalytics is an append-only event log of suggestion actions, used
// for acceptance-rate analytics and training-snapshot construction.
type EssayAnalytics struct {
	BaseModel
	EssayID        string           `gorm:"not null;index"`
	UserID         string           `gorm:"not null;index"`
	SuggestionID   string           `gorm:"not null"`
	Action         SuggestionAction `gorm:"type:varchar(20);not null"`
	SuggestionType string
}
