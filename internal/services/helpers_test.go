package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"feedback_backend/internal/auth"
	"feedback_backend/internal/email"
	"feedback_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Feedback{},
		&models.AuditLog{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func newTestRegistry(t *testing.T) (*Registry, *email.MockProvider, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	mail := email.NewMockProvider()

	return NewRegistry(db, tokens, mail), mail, db
}

var userSeq int

// createUser inserts a verified user directly, bypassing the registration
// flow, for tests that only need an identity.
func createUser(t *testing.T, db *gorm.DB, role models.UserRole) (*models.User, *auth.Identity) {
	t.Helper()

	userSeq++
	user := &models.User{
		Name:         fmt.Sprintf("Test %s %d", role, userSeq),
		Email:        fmt.Sprintf("%s_%d@test.com", role, userSeq),
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(user).Error)

	return user, &auth.Identity{UserID: user.ID, Role: user.Role}
}

func createProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()

	product := &models.Product{Name: name}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createFeedback(t *testing.T, db *gorm.DB, userID, productID string, rating int) *models.Feedback {
	t.Helper()

	feedback := &models.Feedback{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
	}
	require.NoError(t, db.Create(feedback).Error)
	return feedback
}

func fetchProduct(t *testing.T, db *gorm.DB, id string) *models.Product {
	t.Helper()

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return &product
}

func countFeedback(t *testing.T, db *gorm.DB, productID string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Feedback{}).Where("product_id = ?", productID).Count(&count).Error)
	return count
}

func auditEntries(t *testing.T, db *gorm.DB, action string) []models.AuditLog {
	t.Helper()

	var entries []models.AuditLog
	require.NoError(t, db.Where("action = ?", action).Find(&entries).Error)
	return entries
}

func testCtx() context.Context {
	return context.Background()
}
