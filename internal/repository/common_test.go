package repository

import (
	"context"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

// setupTestDB returns a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

// createTestUser inserts a user directly for use as an author.
func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    email,
		Password: "pbkdf2:sha256:600000$00$00",
		Role:     models.RoleReader,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestPost inserts a post directly.
func createTestPost(t *testing.T, db *gorm.DB, title string, authorID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Subtitle:    "a subtitle",
		Body:        "body text",
		CreatedDate: "September 1, 2026",
		UserID:      authorID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

var testCtx = context.Background()
