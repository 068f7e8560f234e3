package handler

import (
	"net/http"
	"strconv"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the personal feed and the anonymous public square.
type FeedHandler struct {
	Feeds *service.FeedService
}

// SquareFeedResponse defines one page of the public square feed.
type SquareFeedResponse struct {
	Items      []PostResponse `json:"items"`
	NextCursor *string        `json:"next_cursor"`
}

// PersonalFeed godoc
// @Summary      Get the personal feed
// @Description  Returns the caller's feed: posts by them and their connections, newest first, each labeled with the relation to the author.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        limit query     int  false  "Max posts" default(50)
// @Success      200  {array}   PostResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /feed [get]
func (h *FeedHandler) PersonalFeed(c *gin.Context) {
	viewerID := auth.UserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	feed, err := h.Feeds.PersonalFeed(viewerID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]PostResponse, 0, len(feed))
	for _, item := range feed {
		resp := newPostResponse(item.Post)
		resp.Relation = string(item.Relation)
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// PublicSquareFeed godoc
// @Summary      Get the public square feed
// @Description  Returns ungrouped public posts, newest first, keyset-paginated by the id of the last item. No authentication required.
// @Tags         feed
// @Produce      json
// @Param        cursor query     string  false  "ID of the last item of the previous page"
// @Param        take   query     int     false  "Page size (max 100)" default(50)
// @Success      200  {object}  SquareFeedResponse
// @Failure      400  {object}  ErrorResponse "Unknown cursor"
// @Router       /square [get]
func (h *FeedHandler) PublicSquareFeed(c *gin.Context) {
	take, err := strconv.Atoi(c.DefaultQuery("take", "50"))
	if err != nil {
		take = 50
	}

	page, err := h.Feeds.PublicSquareFeed(c.Query("cursor"), take)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]PostResponse, 0, len(page.Items))
	for _, post := range page.Items {
		items = append(items, newPostResponse(post))
	}
	c.JSON(http.StatusOK, SquareFeedResponse{
		Items:      items,
		NextCursor: page.NextCursor,
	})
}
