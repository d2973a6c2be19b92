package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dishly/backend/config"
	"github.com/dishly/backend/internal/database"
	"github.com/dishly/backend/internal/middleware"
	"github.com/dishly/backend/internal/service"
)

// HealthCheck reports API and database health.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Dishly API is running",
		})
	}
}

// RegisterRoutes wires all services and registers the API under /api/v1.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, s3cfg *config.S3Config) {
	router.GET("/healthz", HealthCheck(db))

	// Redis backs rate limiting and the like-count cache. The API runs
	// without it.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, continuing without rate limiting and caching: %v", err)
		redisClient = nil
	}

	var recipeCreationLimiter, commentLimiter *middleware.RateLimiter
	if redisClient != nil {
		recipeCreationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
		commentLimiter = middleware.NewCommentRateLimiter(redisClient)
	}

	resolver := database.NewTableResolver(db)

	authService := service.NewAuthService(db, cfg.JWTSecret, service.NewEmailService())
	recipeService := service.NewRecipeService(db)
	likeService := service.NewLikeService(db, resolver, redisClient)
	commentService := service.NewCommentService(db, resolver)
	profileService := service.NewProfileService(db)
	imageService := service.NewImageService(cfg.UnsplashAccessKey, s3cfg)

	authHandler := NewAuthHandler(authService, cfg.AppBaseURL)
	recipeHandler := NewRecipeHandler(recipeService, likeService, imageService, authService, recipeCreationLimiter)
	commentHandler := NewCommentHandler(commentService, authService, commentLimiter)
	profileHandler := NewProfileHandler(profileService, authService)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	commentHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1)
}
