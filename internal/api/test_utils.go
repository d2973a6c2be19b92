package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dishly/backend/internal/database"
	"github.com/dishly/backend/internal/models"
	"github.com/dishly/backend/internal/service"
)

// testEnv bundles the in-memory API under test.
type testEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
	Auth   *service.AuthService
}

// setupTestAPI wires the full API against an in-memory database, without
// Redis, S3, or image search.
func setupTestAPI(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	resolver := database.NewTableResolver(db)
	authService := service.NewAuthService(db, "test-secret", nil)
	recipeService := service.NewRecipeService(db)
	likeService := service.NewLikeService(db, resolver, nil)
	commentService := service.NewCommentService(db, resolver)
	profileService := service.NewProfileService(db)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService, "http://localhost:8080").RegisterRoutes(v1)
	NewRecipeHandler(recipeService, likeService, nil, authService, nil).RegisterRoutes(v1)
	NewCommentHandler(commentService, authService, nil).RegisterRoutes(v1)
	NewProfileHandler(profileService, authService).RegisterRoutes(v1)

	return &testEnv{Router: router, DB: db, Auth: authService}
}

// registerTestUser creates an account through the API and returns its token.
func (e *testEnv) registerTestUser(t *testing.T, name, email, username string) string {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name:     name,
		Email:    email,
		Username: username,
		Password: "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// request performs a JSON request against the test router.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func testRecipeRequest(title, category string) RecipeRequest {
	return RecipeRequest{
		Title:        title,
		Description:  "A test recipe for " + title,
		Ingredients:  []string{"ingredient one", "ingredient two"},
		Instructions: "Combine everything and cook.",
		CookingTime:  20,
		Difficulty:   models.DifficultyEasy,
		Category:     category,
	}
}
