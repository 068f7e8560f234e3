package models

import "time"

// BlockEdge is a directed block from one user to another. The mutual
// invisibility effect is computed at query time by checking both directions;
// only one row is stored per (blocker, blocked) pair.
type BlockEdge struct {
	BlockerID string `gorm:"type:varchar(36);primaryKey"`
	BlockedID string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time

	Blocker User `gorm:"foreignKey:BlockerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Blocked User `gorm:"foreignKey:BlockedID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
