package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mingle/backend/internal/database"
	"mingle/backend/internal/models"
	"mingle/backend/internal/service"
	"mingle/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: would get its own database; pin
	// the pool to one connection so concurrent queries see the same data.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{DB: db, Groups: service.NewGroupService(db), JWTSecret: testSecret}

	router := gin.New()
	router.POST("/api/v1/auth/register", h.Register)
	router.POST("/api/v1/auth/login", h.Login)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterCreatesUserAndPersonalGroup(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)

	w := postJSON(t, router, "/api/v1/auth/register", RegisterInput{
		Nickname: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	userID, err := jwt.ParseToken(resp["token"], testSecret)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, "alice", user.Nickname)

	// Signup is atomic: the personal group exists alongside the user.
	var group models.Group
	require.NoError(t, db.First(&group, "admin_id = ? AND group_type = ?", user.ID, models.GroupPersonal).Error)

	var personalCount int64
	require.NoError(t, db.Model(&models.Group{}).
		Where("admin_id = ? AND group_type = ?", user.ID, models.GroupPersonal).
		Count(&personalCount).Error)
	assert.EqualValues(t, 1, personalCount)
}

func TestRegisterDuplicateNickname(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)

	first := postJSON(t, router, "/api/v1/auth/register", RegisterInput{
		Nickname: "alice", Email: "alice@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, router, "/api/v1/auth/register", RegisterInput{
		Nickname: "alice", Email: "other@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestLoginBannedUserForbidden(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)

	w := postJSON(t, router, "/api/v1/auth/register", RegisterInput{
		Nickname: "alice", Email: "alice@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.Model(&models.User{}).
		Where("nickname = ?", "alice").
		Update("is_banned", true).Error)

	login := postJSON(t, router, "/api/v1/auth/login", LoginInput{
		Login: "alice", Password: "password123",
	})
	assert.Equal(t, http.StatusForbidden, login.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)

	w := postJSON(t, router, "/api/v1/auth/register", RegisterInput{
		Nickname: "alice", Email: "alice@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	login := postJSON(t, router, "/api/v1/auth/login", LoginInput{
		Login: "alice", Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, login.Code)
}
