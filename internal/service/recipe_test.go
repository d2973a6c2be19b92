package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dishly/backend/internal/models"
)

func TestCreateRecipeValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.Recipe)
	}{
		{"missing title", func(r *models.Recipe) { r.Title = "  " }},
		{"missing description", func(r *models.Recipe) { r.Description = "" }},
		{"zero cooking time", func(r *models.Recipe) { r.CookingTime = 0 }},
		{"negative cooking time", func(r *models.Recipe) { r.CookingTime = -5 }},
		{"bad difficulty", func(r *models.Recipe) { r.Difficulty = "impossible" }},
		{"bad category", func(r *models.Recipe) { r.Category = "spacefood" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recipe := testRecipe("Tomato Soup", "dinner")
			tc.mutate(recipe)
			_, err := svc.CreateRecipe(ctx, user.ID, recipe)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, user.ID, testRecipe("Tomato Soup", "dinner"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, user.ID, created.UserID)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Title)
	assert.Equal(t, "Alice Smith", got.AuthorName)
}

func TestGetRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.GetRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListRecipesByCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, user.ID, testRecipe("Tomato Soup", "dinner"))
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, user.ID, testRecipe("Banana Bread", "baking"))
	require.NoError(t, err)

	recipes, err := svc.ListRecipes(ctx, RecipeFilter{Category: "dinner"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Soup", recipes[0].Title)
	assert.Equal(t, "Alice Smith", recipes[0].AuthorName)
}

func TestListRecipesSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, user.ID, testRecipe("Tomato Soup", "dinner"))
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, user.ID, testRecipe("Banana Bread", "baking"))
	require.NoError(t, err)

	recipes, err := svc.ListRecipes(ctx, RecipeFilter{Query: "toMAto"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Soup", recipes[0].Title)

	recipes, err = svc.ListRecipes(ctx, RecipeFilter{Query: "zucchini"})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestListRecipesAuthorFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createUserWithoutProfile(t, db, "ghost@example.com")
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, user.ID, testRecipe("Mystery Stew", "dinner"))
	require.NoError(t, err)

	recipes, err := svc.ListRecipes(ctx, RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, UnknownAuthor, recipes[0].AuthorName)
}

func TestUpdateRecipeOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, user.ID, testRecipe("Tomato Soup", "dinner"))
	require.NoError(t, err)

	edited := testRecipe("Roasted Tomato Soup", "dinner")
	edited.CookingTime = 50
	updated, err := svc.UpdateRecipe(ctx, created.ID, user.ID, edited)
	require.NoError(t, err)
	assert.Equal(t, "Roasted Tomato Soup", updated.Title)
	assert.Equal(t, 50, updated.CookingTime)
}

func TestUpdateRecipeNonOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	intruder := createTestUser(t, db, "Bob Jones", "bob@example.com", "bob")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, owner.ID, testRecipe("Tomato Soup", "dinner"))
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, created.ID, intruder.ID, testRecipe("Hijacked Soup", "dinner"))
	assert.ErrorIs(t, err, ErrNotOwner)

	// The recipe is untouched.
	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Title)
}

func TestUpdateRecipeNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")

	_, err := svc.UpdateRecipe(context.Background(), uuid.New(), user.ID, testRecipe("Nothing", "dinner"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateRecipeKeepsImageWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	ctx := context.Background()

	recipe := testRecipe("Tomato Soup", "dinner")
	recipe.ImageURL = "https://images.example/soup.jpg"
	created, err := svc.CreateRecipe(ctx, user.ID, recipe)
	require.NoError(t, err)

	updated, err := svc.UpdateRecipe(ctx, created.ID, user.ID, testRecipe("Tomato Soup", "dinner"))
	require.NoError(t, err)
	assert.Equal(t, "https://images.example/soup.jpg", updated.ImageURL)
}

func TestDeleteRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	owner := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	intruder := createTestUser(t, db, "Bob Jones", "bob@example.com", "bob")
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, owner.ID, testRecipe("Tomato Soup", "dinner"))
	require.NoError(t, err)

	err = svc.DeleteRecipe(ctx, created.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID, owner.ID))

	_, err = svc.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteRecipe(ctx, created.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
