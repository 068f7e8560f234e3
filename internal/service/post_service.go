package service

import (
	"errors"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostService owns post creation and single-post reads.
type PostService struct {
	db     *gorm.DB
	groups *GroupService
	blocks *BlockService
}

func NewPostService(db *gorm.DB, groups *GroupService, blocks *BlockService) *PostService {
	return &PostService{db: db, groups: groups, blocks: blocks}
}

// Create validates and stores a post. Group-scoped posts go through the same
// type/roster resolution as reads: PERSONAL groups have no content room.
func (s *PostService) Create(authorID, content string, groupID *string, visibility models.PostVisibility) (*models.Post, error) {
	if content == "" {
		return nil, apperr.Validation("post content is required")
	}
	if !visibility.Valid() {
		return nil, apperr.Validation("unrecognized visibility")
	}

	if groupID != nil {
		group, err := s.groups.find(*groupID)
		if err != nil {
			return nil, err
		}
		switch group.GroupType {
		case models.GroupPublic:
			// no roster check
		case models.GroupPrivate:
			var count int64
			err := s.db.Model(&models.GroupMember{}).
				Where("user_id = ? AND group_id = ?", authorID, *groupID).
				Count(&count).Error
			if err != nil {
				return nil, apperr.Internal("failed to query group roster", err)
			}
			if count == 0 {
				return nil, apperr.Forbidden("not a member of this group")
			}
		case models.GroupPersonal:
			return nil, apperr.NotFound("group not found")
		default:
			return nil, apperr.Internal("unrecognized group type", nil)
		}
	}

	post := models.Post{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		Content:    content,
		GroupID:    groupID,
		Visibility: visibility,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, apperr.Internal("failed to create post", err)
	}
	return &post, nil
}

// Get returns a single post. A block in either direction between viewer and
// author hides the post entirely.
func (s *PostService) Get(viewerID, postID string) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("failed to look up post", err)
	}

	if viewerID != "" && viewerID != post.AuthorID {
		blocked, err := s.blocks.IsBlockedEither(viewerID, post.AuthorID)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, apperr.NotFound("post not found")
		}
	}

	if post.GroupID != nil {
		if err := s.groups.AuthorizeRead(viewerID, *post.GroupID); err != nil {
			return nil, err
		}
	}
	return &post, nil
}
