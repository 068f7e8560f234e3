package models

import "time"

// RequestStatus defines the state of a connection request.
type RequestStatus string

const (
	// StatusPending means the request has been sent but not yet decided.
	StatusPending RequestStatus = "PENDING"

	// StatusAccepted means the addressee accepted; a RelationshipEdge was
	// created as part of the same transition. Terminal.
	StatusAccepted RequestStatus = "ACCEPTED"

	// StatusDeclined means the addressee declined; no edge exists. Terminal,
	// but a fresh request may be submitted afterwards.
	StatusDeclined RequestStatus = "DECLINED"
)

// ConnectionRequest represents a proposed relationship between two users.
// At most one PENDING row exists per (requester, requested, kind) triple.
type ConnectionRequest struct {
	ID          string        `gorm:"type:varchar(36);primaryKey"`
	RequesterID string        `gorm:"type:varchar(36);not null;index"`
	RequestedID string        `gorm:"type:varchar(36);not null;index"`
	Kind        RelationKind  `gorm:"type:varchar(20);not null"`
	Status      RequestStatus `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	DecidedAt   *time.Time

	Requester User `gorm:"foreignKey:RequesterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Requested User `gorm:"foreignKey:RequestedID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
