package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dishly/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	baseURL     string
}

func NewAuthHandler(authService *service.AuthService, baseURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		baseURL:     baseURL,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/magic-link", h.RequestMagicLink)
		auth.GET("/magic-link/verify", h.VerifyMagicLink)
	}
}

// Register creates an account and signs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := h.authService.Register(req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Token: token})
}

// Login exchanges email and password for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// RequestMagicLink emails a one-time sign-in link. The response never reveals
// whether the address has an account.
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.authService.RequestMagicLink(req.Email, h.baseURL); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that address has an account, a sign-in link is on its way"})
}

// VerifyMagicLink exchanges the emailed token for a session token.
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	tokenParam := c.Query("token")
	if tokenParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	token, err := h.authService.VerifyMagicLink(tokenParam)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This sign-in link is invalid or has expired"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
