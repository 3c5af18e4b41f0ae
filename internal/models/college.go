package models

// College and Programme are lookup tables referenced by essays and the
// reference-essay portfolio.

type College struct {
	BaseModel
	Name    string `gorm:"not null;uniqueIndex"`
	Country string

	Programmes []Programme `gorm:"foreignKey:CollegeID"`
}

type Programme struct {
	BaseModel
	CollegeID string `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Degree    string
	// EnglishVariant selects the spelling/style used in suggestions.
	EnglishVariant EnglishVariant `gorm:"type:varchar(20);not null;default:'american'"`

	College *College `gorm:"foreignKey:CollegeID"`
}
