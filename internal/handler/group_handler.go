package handler

import (
	"net/http"
	"strconv"
	"time"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/models"
	"mingle/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler serves group lifecycle and group-scoped content.
type GroupHandler struct {
	Groups *service.GroupService
}

// CreateGroupInput defines the structure for creating a group.
type CreateGroupInput struct {
	Name      string `json:"name" binding:"required" example:"Book club"`
	GroupType string `json:"group_type" binding:"required" example:"PUBLIC"`
}

// AddMemberInput defines the structure for adding a member to a private group.
type AddMemberInput struct {
	UserID string `json:"user_id" binding:"required"`
}

// GroupResponse defines the structure for a group's room metadata.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	GroupType string    `json:"group_type"`
	AdminID   string    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newGroupResponse(group models.Group) GroupResponse {
	return GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		GroupType: string(group.GroupType),
		AdminID:   group.AdminID,
		CreatedAt: group.CreatedAt,
	}
}

// CreateGroup godoc
// @Summary      Create a group
// @Description  Creates a PUBLIC or PRIVATE group with the caller as admin.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateGroupInput true "Group Info"
// @Success      201  {object}  GroupResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	viewerID := auth.UserID(c)

	var input CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.Groups.CreateGroup(viewerID, input.Name, models.GroupType(input.GroupType))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGroupResponse(*group))
}

// JoinGroup godoc
// @Summary      Join a public group
// @Description  Adds the caller to a PUBLIC group's roster. Idempotent.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Group ID"
// @Success      200  {object}  map[string]string "{"message": "Joined group"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Private group"
// @Failure      404  {object}  ErrorResponse "Unknown or personal group"
// @Router       /groups/{id}/join [post]
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	viewerID := auth.UserID(c)

	if err := h.Groups.Join(viewerID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined group"})
}

// AddMember godoc
// @Summary      Add a member to a group
// @Description  Adds a user to the group's roster. Admin only.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Group ID"
// @Param        input body  AddMemberInput  true  "Member Info"
// @Success      200  {object}  map[string]string "{"message": "Member added"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the admin"
// @Failure      404  {object}  ErrorResponse
// @Router       /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	viewerID := auth.UserID(c)

	var input AddMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Groups.AddMember(viewerID, input.UserID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member added"})
}

// GetRoom godoc
// @Summary      Get a group's room
// @Description  Returns the group's room metadata, subject to the group's read authorization.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Group ID"
// @Success      200  {object}  GroupResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Private group, not a member"
// @Failure      404  {object}  ErrorResponse "Unknown or personal group"
// @Router       /groups/{id} [get]
func (h *GroupHandler) GetRoom(c *gin.Context) {
	viewerID := auth.UserID(c)

	group, err := h.Groups.GetRoom(viewerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGroupResponse(*group))
}

// ListGroupPosts godoc
// @Summary      List a group's posts
// @Description  Lists the group's posts newest first, subject to the group's read authorization.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Group ID"
// @Param        limit query     int     false  "Max posts" default(50)
// @Success      200  {array}   PostResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Private group, not a member"
// @Failure      404  {object}  ErrorResponse "Unknown or personal group"
// @Router       /groups/{id}/posts [get]
func (h *GroupHandler) ListGroupPosts(c *gin.Context) {
	viewerID := auth.UserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	posts, err := h.Groups.ListPosts(viewerID, c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}
	c.JSON(http.StatusOK, responses)
}
