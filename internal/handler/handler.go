package handler

import (
	"time"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// respondError maps an application error onto its HTTP status and a JSON
// error body. Internal errors get a generic message; the detail stays out of
// the response.
func respondError(c *gin.Context, err error) {
	ae := apperr.From(err)
	msg := ae.Msg
	if ae.Kind == apperr.KindInternal {
		msg = "Internal server error"
	}
	c.JSON(ae.HTTPStatus(), gin.H{"error": msg})
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname" example:"testuser"`
	IsPrivate bool   `json:"is_private"`
}

func newPublicUserResponse(user models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		IsPrivate: user.IsPrivate,
	}
}

// PostResponse defines the structure for a post, optionally labeled with the
// viewer's relation to its author.
type PostResponse struct {
	ID         string             `json:"id"`
	Author     PublicUserResponse `json:"author"`
	Content    string             `json:"content"`
	GroupID    *string            `json:"group_id,omitempty"`
	Visibility string             `json:"visibility"`
	CreatedAt  time.Time          `json:"created_at"`
	Relation   string             `json:"relation,omitempty"`
}

func newPostResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:         post.ID,
		Author:     newPublicUserResponse(post.Author),
		Content:    post.Content,
		GroupID:    post.GroupID,
		Visibility: string(post.Visibility),
		CreatedAt:  post.CreatedAt,
	}
}
