package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dishly/backend/internal/middleware"
	"github.com/dishly/backend/internal/service"
)

// respondError maps a service error onto an HTTP status and a user-facing
// body. Ownership failures carry the sign-in redirect so clients can forward
// the user there.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": service.UserMessage(err)})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, middleware.AuthRedirect(middleware.MsgOwnershipRequired))
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.UserMessage(err)})
	}
}
