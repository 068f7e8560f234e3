package models

import "time"

// RelationKind defines the kind of an established relationship between two users.
type RelationKind string

const (
	// KindAcquaintance is an undirected, mutually confirmed connection.
	KindAcquaintance RelationKind = "ACQUAINTANCE"

	// KindStranger is an undirected connection with a looser social meaning
	// than acquaintance; it still requires both parties to agree.
	KindStranger RelationKind = "STRANGER"

	// KindFollow is a directed subscription: subject follows object.
	KindFollow RelationKind = "FOLLOW"
)

// Valid reports whether k is one of the recognized relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case KindAcquaintance, KindStranger, KindFollow:
		return true
	}
	return false
}

// Directed reports whether edges of this kind carry direction.
// Undirected kinds are stored under a canonical (min, max) key.
func (k RelationKind) Directed() bool {
	return k == KindFollow
}

// RelationshipEdge is an established relationship between two users.
// For undirected kinds the pair is normalized before storage so that at most
// one edge of that kind exists per unordered pair; for FOLLOW the edge is
// directed and unique per ordered pair. Rows are never mutated after
// creation.
type RelationshipEdge struct {
	SubjectID string       `gorm:"type:varchar(36);primaryKey"`
	ObjectID  string       `gorm:"type:varchar(36);primaryKey"`
	Kind      RelationKind `gorm:"type:varchar(20);primaryKey"`
	CreatedAt time.Time

	Subject User `gorm:"foreignKey:SubjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Object  User `gorm:"foreignKey:ObjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// RelationTag labels a feed post with the viewer's relation to its author.
type RelationTag string

const (
	TagSelf         RelationTag = "SELF"
	TagAcquaintance RelationTag = "ACQUAINTANCE"
	TagStranger     RelationTag = "STRANGER"
	TagFollowing    RelationTag = "FOLLOWING"

	// TagNone should be unreachable when the feed author set and the label
	// precedence agree; it is kept as a defect signal rather than a valid
	// state.
	TagNone RelationTag = "NONE"
)
