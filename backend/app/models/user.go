package models

import "time"

// MaxUsernameLen is the Username column size in characters.
const MaxUsernameLen = 50

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	// Skills are removed with their owner.
	Skills    []Skill `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
