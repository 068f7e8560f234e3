package service

import (
	"errors"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"gorm.io/gorm"
)

// RelationService is the relationship ledger: it normalizes and stores
// established relationship edges and answers existence and listing queries.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// WithTx returns a copy of the service bound to the given transaction handle.
func (s *RelationService) WithTx(tx *gorm.DB) *RelationService {
	return &RelationService{db: tx}
}

// NormalizePair orders a pair of user IDs lexicographically so that (X, Y)
// and (Y, X) always resolve to the same storage key. Every undirected-kind
// read and write goes through this.
func NormalizePair(u1, u2 string) (string, string) {
	if u1 <= u2 {
		return u1, u2
	}
	return u2, u1
}

// EdgeExists reports whether an edge of the given kind connects the pair.
// Undirected kinds are normalized before lookup; FOLLOW is looked up directly
// by (subject, object).
func (s *RelationService) EdgeExists(subject, object string, kind models.RelationKind) (bool, error) {
	if !kind.Directed() {
		subject, object = NormalizePair(subject, object)
	}

	var count int64
	err := s.db.Model(&models.RelationshipEdge{}).
		Where("subject_id = ? AND object_id = ? AND kind = ?", subject, object, kind).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to query relationship edge", err)
	}
	return count > 0, nil
}

// CreateEdge writes an edge using the same normalization rule as lookup.
// It must be called only on request acceptance or auto-accept, never
// speculatively. A duplicate-edge race surfaces as a conflict; the store's
// uniqueness constraint on the normalized key is the backstop.
func (s *RelationService) CreateEdge(subject, object string, kind models.RelationKind) (*models.RelationshipEdge, error) {
	if !kind.Directed() {
		subject, object = NormalizePair(subject, object)
	}

	edge := models.RelationshipEdge{
		SubjectID: subject,
		ObjectID:  object,
		Kind:      kind,
	}
	if err := s.db.Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("relationship already exists")
		}
		return nil, apperr.Internal("failed to create relationship edge", err)
	}
	return &edge, nil
}

// ListUndirected returns, for an undirected kind, the counterpart IDs where
// the user appears on either side of the normalized pair.
func (s *RelationService) ListUndirected(userID string, kind models.RelationKind) ([]string, error) {
	if kind.Directed() {
		return nil, apperr.Validation("kind is not undirected")
	}

	var edges []models.RelationshipEdge
	err := s.db.
		Where("kind = ? AND (subject_id = ? OR object_id = ?)", kind, userID, userID).
		Find(&edges).Error
	if err != nil {
		return nil, apperr.Internal("failed to list relationships", err)
	}

	counterparts := make([]string, 0, len(edges))
	for _, e := range edges {
		if e.SubjectID == userID {
			counterparts = append(counterparts, e.ObjectID)
		} else {
			counterparts = append(counterparts, e.SubjectID)
		}
	}
	return counterparts, nil
}

// ListFollowing returns the IDs the user follows.
func (s *RelationService) ListFollowing(userID string) ([]string, error) {
	return s.listDirected("subject_id", "object_id", userID)
}

// ListFollowers returns the IDs following the user.
func (s *RelationService) ListFollowers(userID string) ([]string, error) {
	return s.listDirected("object_id", "subject_id", userID)
}

func (s *RelationService) listDirected(whereCol, selectCol, userID string) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.RelationshipEdge{}).
		Where(whereCol+" = ? AND kind = ?", userID, models.KindFollow).
		Pluck(selectCol, &ids).Error
	if err != nil {
		return nil, apperr.Internal("failed to list follow edges", err)
	}
	return ids, nil
}
