package service

import (
	"errors"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupService resolves group types against roster membership to authorize
// reads of group-scoped content, and owns group lifecycle.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// AuthorizeRead decides whether userID may read groupID's content. A nil
// return means allow. PERSONAL groups expose no shared content surface, even
// to their own admin; they represent an individual's private bookkeeping
// circle, not a forum. This must run before any group-scoped post query.
func (s *GroupService) AuthorizeRead(userID, groupID string) error {
	group, err := s.find(groupID)
	if err != nil {
		return err
	}

	switch group.GroupType {
	case models.GroupPublic:
		return nil
	case models.GroupPrivate:
		var count int64
		err := s.db.Model(&models.GroupMember{}).
			Where("user_id = ? AND group_id = ?", userID, groupID).
			Count(&count).Error
		if err != nil {
			return apperr.Internal("failed to query group roster", err)
		}
		if count == 0 {
			return apperr.Forbidden("not a member of this group")
		}
		return nil
	case models.GroupPersonal:
		return apperr.NotFound("group not found")
	default:
		return apperr.Internal("unrecognized group type", nil)
	}
}

// CreatePersonalGroup creates the per-user bookkeeping group. Called inside
// the signup transaction so a partial failure leaves no orphaned state;
// exactly one exists per user.
func (s *GroupService) CreatePersonalGroup(tx *gorm.DB, user *models.User) (*models.Group, error) {
	group := models.Group{
		ID:        uuid.NewString(),
		Name:      user.Nickname,
		GroupType: models.GroupPersonal,
		AdminID:   user.ID,
	}
	if err := tx.Create(&group).Error; err != nil {
		return nil, apperr.Internal("failed to create personal group", err)
	}
	return &group, nil
}

// CreateGroup creates a PUBLIC or PRIVATE group with the creator as admin
// and first roster member. PERSONAL groups are never created through here.
func (s *GroupService) CreateGroup(adminID, name string, groupType models.GroupType) (*models.Group, error) {
	if name == "" {
		return nil, apperr.Validation("group name is required")
	}
	if groupType != models.GroupPublic && groupType != models.GroupPrivate {
		return nil, apperr.Validation("group type must be PUBLIC or PRIVATE")
	}

	group := models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		GroupType: groupType,
		AdminID:   adminID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.GroupMember{UserID: adminID, GroupID: group.ID}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, apperr.Internal("failed to create group", err)
	}
	return &group, nil
}

// Join adds the user to a PUBLIC group's roster. Idempotent. PRIVATE groups
// are joined only through AddMember; PERSONAL groups are not navigable.
func (s *GroupService) Join(userID, groupID string) error {
	group, err := s.find(groupID)
	if err != nil {
		return err
	}

	switch group.GroupType {
	case models.GroupPublic:
		member := models.GroupMember{UserID: userID, GroupID: groupID}
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
			return apperr.Internal("failed to join group", err)
		}
		return nil
	case models.GroupPrivate:
		return apperr.Forbidden("private groups are invite-only")
	case models.GroupPersonal:
		return apperr.NotFound("group not found")
	default:
		return apperr.Internal("unrecognized group type", nil)
	}
}

// AddMember lets the group admin add a user to a PRIVATE group's roster.
func (s *GroupService) AddMember(adminID, userID, groupID string) error {
	group, err := s.find(groupID)
	if err != nil {
		return err
	}
	if group.GroupType == models.GroupPersonal {
		return apperr.NotFound("group not found")
	}
	if group.AdminID != adminID {
		return apperr.Forbidden("only the group admin may add members")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to look up user", err)
	}

	member := models.GroupMember{UserID: userID, GroupID: groupID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
		return apperr.Internal("failed to add member", err)
	}
	return nil
}

// GetRoom returns the group's room metadata, gated by AuthorizeRead.
func (s *GroupService) GetRoom(userID, groupID string) (*models.Group, error) {
	if err := s.AuthorizeRead(userID, groupID); err != nil {
		return nil, err
	}
	return s.find(groupID)
}

// ListPosts returns a group's posts newest first, gated by AuthorizeRead.
func (s *GroupService) ListPosts(userID, groupID string, limit int) ([]models.Post, error) {
	if err := s.AuthorizeRead(userID, groupID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var posts []models.Post
	err := s.db.
		Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal("failed to list group posts", err)
	}
	return posts, nil
}

func (s *GroupService) find(groupID string) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("group not found")
		}
		return nil, apperr.Internal("failed to look up group", err)
	}
	return &group, nil
}
