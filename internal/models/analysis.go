package models

import (
	"time"

	"gorm.io/datatypes"
)

// SuggestionLocation is a byte-offset span into the content snapshot the
// analysis ran against.
type SuggestionLocation struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Suggestion is one structured edit proposal returned by the AI gateway.
type Suggestion struct {
	ID           string             `json:"id"`
	Type         string             `json:"type"`
	Severity     string             `json:"severity"`
	Location     SuggestionLocation `json:"location"`
	OriginalText string             `json:"originalText"`
	Suggestion   string             `json:"suggestion"`
	Rationale    string             `json:"rationale"`
}

// EssayAnalysis stores one analysis run: the suggestions JSON, the hash of
// the content they were generated against, and the applied/dismissed id sets.
type EssayAnalysis struct {
	BaseModel
	EssayID     string         `gorm:"not null;index"`
	ContentHash string         `gorm:"not null;index"`
	Status      AnalysisStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Model       string

	// ContentSnapshot is the exact content the suggestions' offsets refer
	// to; training snapshots use it as the "before" side.
	ContentSnapshot string `gorm:"type:text"`

	Suggestions          datatypes.JSON
	AppliedSuggestions   datatypes.JSON
	DismissedSuggestions datatypes.JSON

	ErrorMessage string
	CompletedAt  *time.Time
}

// AnalysisSession is the persisted per-essay state machine replacing the
// original in-memory one-shot trigger flag, so the at-most-once guard holds
// across tabs and devices.
type AnalysisSession struct {
	BaseModel
	EssayID     string       `gorm:"not null;uniqueIndex"`
	State       SessionState `gorm:"type:varchar(20);not null;default:'idle'"`
	ContentHash string
	AnalysisID  *string
	TriggeredAt *time.Time
}
