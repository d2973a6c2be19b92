package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dishly/backend/internal/models"
)

// UpdateProfileRequest carries the optional profile fields to change.
type UpdateProfileRequest struct {
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
}

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the fields provided in req.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	if req.Username != "" {
		profile.Username = req.Username
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserRecipes retrieves the recipes owned by a user, newest first.
func (s *ProfileService) GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
