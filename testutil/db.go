// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"recipe-api/config"
	"recipe-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with all models migrated.
// The database disappears when the test's cleanup closes the handle.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := config.SQLiteDSN(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, first, last, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{FirstName: first, LastName: last, Email: email, PasswordHash: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateRecipe inserts a minimal valid recipe owned by userID.
func CreateRecipe(t *testing.T, db *gorm.DB, userID, name string) *models.Recipe {
	t.Helper()
	r := &models.Recipe{
		Name:         name,
		Category:     models.DefaultCategory,
		CookingTime:  models.DefaultCookingTime,
		PrepTime:     models.DefaultPrepTime,
		Ingredients:  []models.Ingredient{{Name: "rice", Quantity: "2", Unit: "cups"}},
		Instructions: []models.Instruction{{Step: 1, Text: "boil"}},
		Image:        models.PlaceholderImage,
		UserID:       userID,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}
