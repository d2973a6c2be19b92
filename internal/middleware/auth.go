package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenClaims holds the identity carried by a session token.
type TokenClaims struct {
	UserID uuid.UUID
}

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (*TokenClaims, error)
}

// Messages shown when a gated action is attempted without the right session.
const (
	MsgLoginRequired     = "You need to be logged in to perform this action"
	MsgLikeRequired      = "You need to be logged in to like or review a recipe"
	MsgOwnershipRequired = "You do not have permission to perform this action"
)

const signInPath = "/auth/sign-in"

// AuthRedirect builds the error body for a rejected gated action: the
// message plus the sign-in route carrying it, so clients can forward the
// user there.
func AuthRedirect(message string) gin.H {
	return gin.H{
		"error":    message,
		"redirect": signInPath + "?message=" + url.QueryEscape(message),
	}
}

// AuthMiddleware creates a middleware that requires a valid session token.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return AuthMiddlewareWithMessage(validator, MsgLoginRequired)
}

// AuthMiddlewareWithMessage is AuthMiddleware with a route-specific message.
func AuthMiddlewareWithMessage(validator TokenValidator, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, validator)
		if err != nil {
			c.JSON(http.StatusUnauthorized, AuthRedirect(message))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuth resolves the current user when a token is present but never
// rejects the request. Public reads that vary by session use it.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := claimsFromRequest(c, validator); err == nil {
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id from the request context.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

func claimsFromRequest(c *gin.Context, validator TokenValidator) (*TokenClaims, error) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errMissingToken
	}
	return validator.ValidateToken(parts[1])
}

type authError string

func (e authError) Error() string { return string(e) }

const errMissingToken = authError("missing or malformed authorization header")
