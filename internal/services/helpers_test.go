package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/disaster-relief-api/internal/database"
	"github.com/yukikurage/disaster-relief-api/internal/logging"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/repository"
	"github.com/yukikurage/disaster-relief-api/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every pooled connection to ":memory:" would get its own empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, logging.Discard()))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func identityOf(user *models.User) session.Identity {
	return session.Identity{UserID: user.ID, Username: user.Username, Email: user.Email}
}

// newFastAuthService keeps bcrypt cheap in tests.
func newFastAuthService(db *gorm.DB) *AuthService {
	svc := NewAuthService(repository.NewUserRepository(db))
	svc.hashCost = bcrypt.MinCost
	return svc
}
