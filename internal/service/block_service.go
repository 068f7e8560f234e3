package service

import (
	"errors"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockService maintains directed block edges and answers the visibility
// queries used by every content check.
type BlockService struct {
	db *gorm.DB
}

func NewBlockService(db *gorm.DB) *BlockService {
	return &BlockService{db: db}
}

// Block upserts a directed block edge. Re-blocking is a no-op, not an error.
func (s *BlockService) Block(blockerID, blockedID string) error {
	if blockerID == blockedID {
		return apperr.Validation("cannot block yourself")
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", blockedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("target user not found")
		}
		return apperr.Internal("failed to look up target user", err)
	}

	edge := models.BlockEdge{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
		return apperr.Internal("failed to create block", err)
	}
	return nil
}

// Unblock deletes the edge if present; succeeds even if absent.
func (s *BlockService) Unblock(blockerID, blockedID string) error {
	err := s.db.
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.BlockEdge{}).Error
	if err != nil {
		return apperr.Internal("failed to delete block", err)
	}
	return nil
}

// IsBlockedEither reports whether a block edge exists in either direction
// between a and b. This is the sole visibility gate used by feed assembly.
func (s *BlockService) IsBlockedEither(a, b string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BlockEdge{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to query blocks", err)
	}
	return count > 0, nil
}

// BlockedEitherSet returns every user involved in a block with userID, in
// either direction. Feed assembly uses this to apply the IsBlockedEither
// predicate to a whole candidate set in one query.
func (s *BlockService) BlockedEitherSet(userID string) (map[string]struct{}, error) {
	var edges []models.BlockEdge
	err := s.db.
		Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Find(&edges).Error
	if err != nil {
		return nil, apperr.Internal("failed to query blocks", err)
	}

	set := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		if e.BlockerID == userID {
			set[e.BlockedID] = struct{}{}
		} else {
			set[e.BlockerID] = struct{}{}
		}
	}
	return set, nil
}
