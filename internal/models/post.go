package models

import "time"

// PostVisibility defines who may see a post.
type PostVisibility string

const (
	// VisibilityPublic posts with no group are eligible for the anonymous
	// public square feed.
	VisibilityPublic PostVisibility = "PUBLIC"

	// VisibilityConnections posts surface only through relationship-scoped
	// feeds.
	VisibilityConnections PostVisibility = "CONNECTIONS"
)

// Valid reports whether v is one of the recognized visibilities.
func (v PostVisibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityConnections:
		return true
	}
	return false
}

// Post represents a piece of user content, optionally scoped to a group.
type Post struct {
	ID         string         `gorm:"type:varchar(36);primaryKey"`
	AuthorID   string         `gorm:"type:varchar(36);not null;index"`
	Content    string         `gorm:"not null"`
	GroupID    *string        `gorm:"type:varchar(36);index"`
	Visibility PostVisibility `gorm:"type:varchar(20);not null;index"`
	CreatedAt  time.Time      `gorm:"index"`

	Author User   `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Group  *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
