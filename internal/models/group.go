package models

import "time"

// GroupType defines who may read a group's content.
type GroupType string

const (
	// GroupPublic groups are readable by anyone, no roster check.
	GroupPublic GroupType = "PUBLIC"

	// GroupPrivate groups require a roster row for the reader.
	GroupPrivate GroupType = "PRIVATE"

	// GroupPersonal is a per-user bookkeeping group created at signup. It has
	// no content room and is not navigable, even by its own admin.
	GroupPersonal GroupType = "PERSONAL"
)

// Valid reports whether t is one of the recognized group types.
func (t GroupType) Valid() bool {
	switch t {
	case GroupPublic, GroupPrivate, GroupPersonal:
		return true
	}
	return false
}

// Group represents a content group.
type Group struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	GroupType GroupType `gorm:"type:varchar(20);not null;index"`
	AdminID   string    `gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time

	Admin User `gorm:"foreignKey:AdminID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// GroupMember is a roster row granting a user membership in a group.
type GroupMember struct {
	UserID    string `gorm:"type:varchar(36);primaryKey"`
	GroupID   string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time

	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
