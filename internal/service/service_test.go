package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dishly/backend/internal/database"
	"github.com/dishly/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Recipe{},
		&models.RecipeLike{},
		&models.RecipeComment{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, username string) *models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.Profile{
		UserID:   user.ID,
		Username: username,
		FullName: name,
	}
	require.NoError(t, db.Create(&profile).Error)

	return &user
}

// createUserWithoutProfile covers accounts whose profile row is missing.
func createUserWithoutProfile(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:         "No Profile",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func testRecipe(title, category string) *models.Recipe {
	return &models.Recipe{
		Title:        title,
		Description:  "A test recipe for " + title,
		Ingredients:  models.JSONBStringArray{"ingredient one", "ingredient two"},
		Instructions: "Combine everything and cook.",
		CookingTime:  20,
		Difficulty:   models.DifficultyEasy,
		Category:     category,
	}
}

func newTestResolver(db *gorm.DB) *database.TableResolver {
	return database.NewTableResolver(db)
}
