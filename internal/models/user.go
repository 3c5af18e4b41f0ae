package models

import "time"

type User struct {
	BaseModel
	Email             string        `gorm:"uniqueIndex;not null"`
	PasswordHash      string        `gorm:"not null"`
	Role              UserRole      `gorm:"type:varchar(20);not null;default:'free'"`
	AccountStatus     AccountStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	IsVerified        bool          `gorm:"default:false"`
	VerificationToken string
	ResetToken        string
	ResetTokenExp     *time.Time
	LastActiveAt      *time.Time

	// Relations
	Profile       *Profile       `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

// Profile holds writer identity details created at signup and edited by
// the user afterwards.
type Profile struct {
	BaseModel
	UserID        string `gorm:"not null;uniqueIndex"`
	FullName      string `gorm:"not null"`
	Country       string
	IntendedMajor string
	GradYear      int
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
