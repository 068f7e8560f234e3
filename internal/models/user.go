package models

import "time"

// User represents a user in the system.
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Nickname     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
	IsPrivate    bool   `gorm:"not null;default:false"`
	IsBanned     bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
