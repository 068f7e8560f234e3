package service

import (
	"testing"
	"time"

	"mingle/backend/internal/database"
	"mingle/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func createUser(t *testing.T, db *gorm.DB, nickname string, private bool) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.NewString(),
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "irrelevant",
		IsPrivate:    private,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, author models.User, content string, createdAt time.Time) models.Post {
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
