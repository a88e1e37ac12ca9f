package models

import "time"

// MaxSkillnameLen is the Skillname column size in characters.
const MaxSkillnameLen = 100

type Skill struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_skill,priority:1"`
	Skillname string `gorm:"column:skillname;size:100;not null;uniqueIndex:idx_user_skill,priority:2"`
	XP        int    `gorm:"column:xp;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// All returns the models managed by AutoMigrate, parents first.
func All() []any { return []any{&User{}, &Skill{}} }
