package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dishly/backend/internal/middleware"
	"github.com/dishly/backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/recipes", h.GetMyRecipes)
	}
}

// GetProfile returns the current user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLoginRequired))
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates the current user's profile fields.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLoginRequired))
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMyRecipes lists the current user's recipes, newest first.
func (h *ProfileHandler) GetMyRecipes(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLoginRequired))
		return
	}

	recipes, err := h.profileService.GetUserRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
