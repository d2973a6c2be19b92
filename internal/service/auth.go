package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dishly/backend/internal/middleware"
	"github.com/dishly/backend/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with uppercase, number, and special character")
)

const (
	sessionTokenTTL   = 24 * time.Hour
	magicLinkTokenTTL = 15 * time.Minute
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	email     EmailSender
}

// NewAuthService creates a new AuthService. The email sender may be nil, in
// which case passwordless sign-in is disabled.
func NewAuthService(db *gorm.DB, jwtSecret string, email EmailSender) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		email:     email,
	}
}

// Register creates a user and their profile, returning a session token.
func (s *AuthService) Register(name, email, username, password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	var existingUser models.User
	if err := s.db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		return "", ErrAccountExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", err
	}

	profile := models.Profile{
		UserID:   user.ID,
		Username: username,
		FullName: name,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return "", err
	}

	return s.GenerateToken(user.ID)
}

// Login verifies the password and returns a session token.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.GenerateToken(user.ID)
}

// RequestMagicLink emails a one-time sign-in link to the given address.
// Unknown addresses are not reported back to the caller.
func (s *AuthService) RequestMagicLink(email, baseURL string) error {
	if s.email == nil {
		return errors.New("passwordless sign-in is not configured")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}

	token, err := s.signToken(user.ID, magicLinkTokenTTL, "magic_link")
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/magic-link/verify?token=%s", strings.TrimRight(baseURL, "/"), token)
	return s.email.SendMagicLink(user.Email, user.Name, link)
}

// VerifyMagicLink exchanges a valid magic-link token for a session token.
func (s *AuthService) VerifyMagicLink(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "magic_link" {
		return "", errors.New("invalid token")
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return "", err
	}

	return s.GenerateToken(userID)
}

// GenerateToken issues a session token for the given user.
func (s *AuthService) GenerateToken(userID uuid.UUID) (string, error) {
	return s.signToken(userID, sessionTokenTTL, "")
}

func (s *AuthService) signToken(userID uuid.UUID, ttl time.Duration, purpose string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	if purpose != "" {
		claims["purpose"] = purpose
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	// Magic-link tokens are single-purpose and never valid as sessions.
	if purpose, _ := claims["purpose"].(string); purpose != "" {
		return nil, errors.New("invalid token")
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return nil, err
	}

	return &middleware.TokenClaims{UserID: userID}, nil
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func userIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("invalid token claims")
	}
	return uuid.Parse(userIDStr)
}

// ValidatePassword enforces the minimum password strength rule.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasNumber = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasNumber || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}
