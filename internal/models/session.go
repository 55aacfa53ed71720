package models

import "time"

type Session struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserID       int64  `gorm:"not null;index"`
	Fingerprint  string `gorm:"type:text;not null"`
	RefreshToken string `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Session) TableName() string { return "sessions" }
