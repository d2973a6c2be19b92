package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dishly/backend/internal/middleware"
	"github.com/dishly/backend/internal/models"
	"github.com/dishly/backend/internal/service"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	likeService     *service.LikeService
	imageService    *service.ImageService
	authService     *service.AuthService
	creationLimiter *middleware.RateLimiter
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	likeService *service.LikeService,
	imageService *service.ImageService,
	authService *service.AuthService,
	creationLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		likeService:     likeService,
		imageService:    imageService,
		authService:     authService,
		creationLimiter: creationLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/categories", h.ListCategories)
		recipes.GET("/:id", middleware.OptionalAuth(h.authService), h.GetRecipe)

		create := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
		if h.creationLimiter != nil {
			create = append(create, h.creationLimiter.RateLimitMiddleware())
		}
		recipes.POST("", append(create, h.CreateRecipe)...)

		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
		recipes.POST("/:id/like", middleware.AuthMiddlewareWithMessage(h.authService, middleware.MsgLikeRequired), h.ToggleLike)
	}
}

// ListRecipes lists recipes, optionally filtered by search query, category,
// or owner.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	if userParam := c.Query("user_id"); userParam != "" {
		userID, err := uuid.Parse(userParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		filter.UserID = &userID
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// ListCategories returns the category taxonomy used for browsing.
func (h *RecipeHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.AllCategories()})
}

// GetRecipe returns a recipe with its author name, like count, and whether
// the current session has liked it.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	likeCount, err := h.likeService.Count(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	liked := false
	if userID, ok := middleware.CurrentUserID(c); ok {
		liked, err = h.likeService.Liked(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":     recipe,
		"like_count": likeCount,
		"liked":      liked,
	})
}

// CreateRecipe creates a recipe owned by the current user. When no image URL
// is supplied, a stock photo is looked up; image failures never block the
// create.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLoginRequired))
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	recipe := recipeFromRequest(&req)
	if recipe.ImageURL == "" && h.imageService != nil {
		recipe.ImageURL = h.imageService.SearchRecipeImage(c.Request.Context(), req.Title)
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, recipe)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateRecipe edits a recipe owned by the current user.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLoginRequired))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, recipeFromRequest(&req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteRecipe removes a recipe owned by the current user.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLoginRequired))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// ToggleLike flips the current user's like on a recipe.
func (h *RecipeHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLikeRequired))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	liked, err := h.likeService.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.likeService.Count(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": count})
}

func recipeFromRequest(req *RecipeRequest) *models.Recipe {
	return &models.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  models.JSONBStringArray(req.Ingredients),
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	}
}
