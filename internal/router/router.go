package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dishly/backend/config"
	"github.com/dishly/backend/internal/api"
	"github.com/dishly/backend/internal/middleware"
)

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(db *gorm.DB, cfg *config.Config, s3cfg *config.S3Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(router, db, cfg, s3cfg)

	return router
}
