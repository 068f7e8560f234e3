package handler

import (
	"net/http"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/models"
	"mingle/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PostHandler serves post creation and single-post reads.
type PostHandler struct {
	Posts *service.PostService
}

// CreatePostInput defines the structure for creating a post.
type CreatePostInput struct {
	Content    string  `json:"content" binding:"required" example:"hello"`
	GroupID    *string `json:"group_id"`
	Visibility string  `json:"visibility" binding:"required" example:"PUBLIC"`
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post, optionally scoped to a group the caller may post into.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreatePostInput true "Post Info"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member of the group"
// @Failure      404  {object}  ErrorResponse "Unknown or personal group"
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	viewerID := auth.UserID(c)

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.Posts.Create(viewerID, input.Content, input.GroupID, models.PostVisibility(input.Visibility))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPostResponse(*post))
}

// GetPost godoc
// @Summary      Get a post
// @Description  Returns a single post; hidden entirely when a block exists between viewer and author.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	viewerID := auth.UserID(c)

	post, err := h.Posts.Get(viewerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(*post))
}
