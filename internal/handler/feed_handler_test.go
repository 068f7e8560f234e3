package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/models"
	"mingle/backend/internal/service"
	"mingle/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	relations := service.NewRelationService(db)
	blocks := service.NewBlockService(db)
	h := &FeedHandler{Feeds: service.NewFeedService(db, relations, blocks)}

	router := gin.New()
	router.GET("/api/v1/square", auth.OptionalMiddleware(testSecret), h.PublicSquareFeed)
	router.GET("/api/v1/feed", auth.Middleware(testSecret), h.PersonalFeed)
	return router
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPublicPost(t *testing.T, db *gorm.DB, author models.User, content string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{
		ID:         uuid.NewString(),
		AuthorID:   author.ID,
		Content:    content,
		Visibility: models.VisibilityPublic,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func TestPublicSquareNeedsNoAuthentication(t *testing.T) {
	db := newTestDB(t)
	router := newFeedRouter(db)
	author := seedUser(t, db, "author")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedPublicPost(t, db, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/square?take=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var page SquareFeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 3)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "post 4", page.Items[0].Content)

	// Follow the cursor to exhaustion.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/square?take=3&cursor="+*page.NextCursor, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var rest SquareFeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rest))
	require.Len(t, rest.Items, 2)
	assert.Nil(t, rest.NextCursor)
	assert.Equal(t, "post 0", rest.Items[1].Content)
}

func TestPublicSquareUnknownCursorBadRequest(t *testing.T) {
	db := newTestDB(t)
	router := newFeedRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/square?cursor=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonalFeedRequiresAuthentication(t *testing.T) {
	db := newTestDB(t)
	router := newFeedRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPersonalFeedLabelsPosts(t *testing.T) {
	db := newTestDB(t)
	router := newFeedRouter(db)
	viewer := seedUser(t, db, "viewer")
	friend := seedUser(t, db, "friend")

	relations := service.NewRelationService(db)
	_, err := relations.CreateEdge(viewer.ID, friend.ID, models.KindAcquaintance)
	require.NoError(t, err)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedPublicPost(t, db, viewer, "mine", base.Add(time.Minute))
	seedPublicPost(t, db, friend, "theirs", base)

	token, err := jwt.GenerateToken(viewer.ID, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var feed []PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "SELF", feed[0].Relation)
	assert.Equal(t, "ACQUAINTANCE", feed[1].Relation)
}
