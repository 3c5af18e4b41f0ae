package models

import "gorm.io/datatypes"

// SuccessfulEssay is a curated reference essay. The top-scoring rows for a
// college/programme pair form the retrieval context for analysis prompts.
type SuccessfulEssay struct {
	BaseModel
	Title   string `gorm:"not null"`
	Content string `gorm:"type:text;not null"`

	CollegeID       *string
	ProgrammeID     *string
	CustomCollege   string
	CustomProgramme string

	PerformanceScore int `gorm:"not null;index"`
	KeyStrategies    datatypes.JSON
	WordCount        int

	// manual, ai_parsed or training
	Source  string `gorm:"type:varchar(20);not null;default:'manual'"`
	AddedBy string

	College   *College   `gorm:"foreignKey:CollegeID"`
	Programme *Programme `gorm:"foreignKey:ProgrammeID"`
}
