package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dishly/backend/internal/middleware"
	"github.com/dishly/backend/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
	authService    *service.AuthService
	commentLimiter *middleware.RateLimiter
}

func NewCommentHandler(
	commentService *service.CommentService,
	authService *service.AuthService,
	commentLimiter *middleware.RateLimiter,
) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		authService:    authService,
		commentLimiter: commentLimiter,
	}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/:id/comments", h.ListComments)

	add := []gin.HandlerFunc{middleware.AuthMiddlewareWithMessage(h.authService, middleware.MsgLikeRequired)}
	if h.commentLimiter != nil {
		add = append(add, h.commentLimiter.RateLimitMiddleware())
	}
	router.POST("/recipes/:id/comments", append(add, h.AddComment)...)

	router.DELETE("/comments/:id", middleware.AuthMiddleware(h.authService), h.DeleteComment)
}

// ListComments returns a recipe's comments newest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AddComment posts a comment by the current user on a recipe.
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLikeRequired))
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), userID, recipeID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment authored by the current user.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.AuthRedirect(middleware.MsgLoginRequired))
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), commentID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
