package handler

import (
	"net/http"
	"strconv"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler serves user profiles, search, and moderation.
type UserHandler struct {
	DB *gorm.DB
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname" example:"testuser"`
	Email     string `json:"email" example:"test@example.com"`
	IsPrivate bool   `json:"is_private"`
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	viewerID := auth.UserID(c)

	var user models.User
	if err := h.DB.First(&user, "id = ?", viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, PrivateUserResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		IsPrivate: user.IsPrivate,
	})
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user by their ID.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	viewerID := auth.UserID(c)
	targetUserID := c.Param("id")

	if viewerID == targetUserID {
		h.GetMe(c)
		return
	}

	var targetUser models.User
	if err := h.DB.First(&targetUser, "id = ?", targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newPublicUserResponse(targetUser))
}

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by nickname with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for nickname"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	viewerID := auth.UserID(c)
	searchQuery := c.Query("q")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	query := h.DB.Model(&models.User{}).Where("is_banned = ?", false)
	if searchQuery != "" {
		query = query.Where("lower(nickname) LIKE lower(?)", "%"+searchQuery+"%")
	}

	result, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	userResponses := make([]PublicUserResponse, 0, len(result.Data))
	for _, user := range result.Data {
		// Don't show the viewer in the search results
		if user.ID == viewerID {
			continue
		}
		userResponses = append(userResponses, newPublicUserResponse(user))
	}

	c.JSON(http.StatusOK, PaginatedResponse[PublicUserResponse]{
		Data: userResponses,
		Meta: result.Meta,
	})
}

// BanUser godoc
// @Summary      Ban a user
// @Description  Marks a user as banned. Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]string "{"message": "User banned"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id}/ban [post]
func (h *UserHandler) BanUser(c *gin.Context) {
	h.setBanned(c, true, "User banned")
}

// UnbanUser godoc
// @Summary      Unban a user
// @Description  Clears a user's banned flag. Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]string "{"message": "User unbanned"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id}/unban [post]
func (h *UserHandler) UnbanUser(c *gin.Context) {
	h.setBanned(c, false, "User unbanned")
}

func (h *UserHandler) setBanned(c *gin.Context, banned bool, message string) {
	targetUserID := c.Param("id")

	result := h.DB.Model(&models.User{}).Where("id = ?", targetUserID).Update("is_banned", banned)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
