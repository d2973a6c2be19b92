package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishly/backend/internal/models"
	"github.com/dishly/backend/internal/service"
)

func TestCommentLifecycle(t *testing.T) {
	env := setupTestAPI(t)
	authorToken := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	created := createRecipeViaAPI(t, env, authorToken, "Tomato Soup", "dinner")
	path := "/api/v1/recipes/" + created.ID.String() + "/comments"

	w := env.request(t, http.MethodPost, path, authorToken, CommentRequest{Content: "Family favorite."})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var comment models.RecipeComment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, "Family favorite.", comment.Content)

	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Comments []service.CommentWithAuthor `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "Alice Smith", resp.Comments[0].AuthorName)

	w = env.request(t, http.MethodDelete, "/api/v1/comments/"+comment.ID.String(), authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Comments)
}

func TestCommentAnonymousRejected(t *testing.T) {
	env := setupTestAPI(t)
	token := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	created := createRecipeViaAPI(t, env, token, "Tomato Soup", "dinner")

	w := env.request(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/comments", "", CommentRequest{Content: "Anon was here."})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "You need to be logged in to like or review a recipe", body["error"])
	assert.Contains(t, body["redirect"], "/auth/sign-in?message=")
}

func TestCommentEmptyContent(t *testing.T) {
	env := setupTestAPI(t)
	token := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	created := createRecipeViaAPI(t, env, token, "Tomato Soup", "dinner")

	w := env.request(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/comments", token, CommentRequest{Content: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCommentNonAuthor(t *testing.T) {
	env := setupTestAPI(t)
	authorToken := env.registerTestUser(t, "Alice Smith", "alice@example.com", "alice")
	otherToken := env.registerTestUser(t, "Bob Jones", "bob@example.com", "bob")
	created := createRecipeViaAPI(t, env, authorToken, "Tomato Soup", "dinner")

	w := env.request(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/comments", authorToken, CommentRequest{Content: "Mine."})
	require.Equal(t, http.StatusCreated, w.Code)

	var comment models.RecipeComment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	w = env.request(t, http.MethodDelete, "/api/v1/comments/"+comment.ID.String(), otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "You do not have permission to perform this action", body["error"])
}
