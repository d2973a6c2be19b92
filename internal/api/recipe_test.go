package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishly/backend/internal/service"
)

func createRecipeViaAPI(t *testing.T, env *testEnv, token, title, category string) service.RecipeWithAuthor {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/v1/recipes", token, testRecipeRequest(title, category))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created service.RecipeWithAuthor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestCreateAndListRecipes(t *testing.T) {
	env := setupTestAPI(t)
	token := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")

	created := createRecipeViaAPI(t, env, token, "Tomato Soup", "dinner")
	createRecipeViaAPI(t, env, token, "Banana Bread", "baking")

	w := env.request(t, http.MethodGet, "/api/v1/recipes?category=dinner", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []service.RecipeWithAuthor `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, created.ID, resp.Recipes[0].ID)
	assert.Equal(t, "Tomato Soup", resp.Recipes[0].Title)
	assert.Equal(t, "Alice Smith", resp.Recipes[0].AuthorName)
}

func TestCreateRecipeInvalidCategory(t *testing.T) {
	env := setupTestAPI(t)
	token := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")

	w := env.request(t, http.MethodPost, "/api/v1/recipes", token, testRecipeRequest("Space Stew", "spacefood"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipeWithLikeState(t *testing.T) {
	env := setupTestAPI(t)
	token := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	created := createRecipeViaAPI(t, env, token, "Tomato Soup", "dinner")

	w := env.request(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipe    service.RecipeWithAuthor `json:"recipe"`
		LikeCount int64                    `json:"like_count"`
		Liked     bool                     `json:"liked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Tomato Soup", resp.Recipe.Title)
	assert.Equal(t, int64(0), resp.LikeCount)
	assert.False(t, resp.Liked)
}

func TestGetRecipeNotFound(t *testing.T) {
	env := setupTestAPI(t)

	w := env.request(t, http.MethodGet, "/api/v1/recipes/6a6e3a41-7a82-4ce4-9c3b-111111111111", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleLikeEndpoint(t *testing.T) {
	env := setupTestAPI(t)
	token := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	created := createRecipeViaAPI(t, env, token, "Tomato Soup", "dinner")
	path := "/api/v1/recipes/" + created.ID.String() + "/like"

	var resp struct {
		Liked     bool  `json:"liked"`
		LikeCount int64 `json:"like_count"`
	}

	w := env.request(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(1), resp.LikeCount)

	// Toggling again undoes the like.
	w = env.request(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Liked)
	assert.Equal(t, int64(0), resp.LikeCount)
}

func TestToggleLikeAnonymous(t *testing.T) {
	env := setupTestAPI(t)
	token := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	created := createRecipeViaAPI(t, env, token, "Tomato Soup", "dinner")

	w := env.request(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/like", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "You need to be logged in to like or review a recipe", body["error"])
	assert.Contains(t, body["redirect"], "/auth/sign-in?message=")
}

func TestUpdateRecipeNonOwnerEndpoint(t *testing.T) {
	env := setupTestAPI(t)
	ownerToken := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	otherToken := env.registerTestUser(t, "Bob Jones", "bob@example.com", "bob")
	created := createRecipeViaAPI(t, env, ownerToken, "Tomato Soup", "dinner")
	path := "/api/v1/recipes/" + created.ID.String()

	w := env.request(t, http.MethodPut, path, otherToken, testRecipeRequest("Hijacked Soup", "dinner"))
	require.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "You do not have permission to perform this action", body["error"])
	assert.Contains(t, body["redirect"], "/auth/sign-in?message=")

	// The owner can still edit.
	w = env.request(t, http.MethodPut, path, ownerToken, testRecipeRequest("Roasted Tomato Soup", "dinner"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Roasted Tomato Soup")
}

func TestDeleteRecipeEndpoint(t *testing.T) {
	env := setupTestAPI(t)
	ownerToken := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	otherToken := env.registerTestUser(t, "Bob Jones", "bob@example.com", "bob")
	created := createRecipeViaAPI(t, env, ownerToken, "Tomato Soup", "dinner")
	path := "/api/v1/recipes/" + created.ID.String()

	w := env.request(t, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyRecipesEndpoint(t *testing.T) {
	env := setupTestAPI(t)
	aliceToken := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	bobToken := env.registerTestUser(t, "Bob Jones", "bob@example.com", "bob")

	createRecipeViaAPI(t, env, aliceToken, "Tomato Soup", "dinner")
	createRecipeViaAPI(t, env, bobToken, "Banana Bread", "baking")

	w := env.request(t, http.MethodGet, "/api/v1/profile/recipes", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")
	assert.NotContains(t, w.Body.String(), "Banana Bread")
}
