package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dishly/backend/internal/models"
)

// UnknownAuthor is shown when a recipe or comment author has no profile.
const UnknownAuthor = "Unknown"

// RecipeWithAuthor pairs a recipe with its owner's display name.
type RecipeWithAuthor struct {
	models.Recipe
	AuthorName string `json:"author_name"`
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	Category string
	Query    string
	UserID   *uuid.UUID
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates and creates a new recipe owned by userID.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	recipe.UserID = userID
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Description)

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID with its author's display name.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeWithAuthor, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}

	names, err := s.authorNames(ctx, []uuid.UUID{recipe.UserID})
	if err != nil {
		return nil, err
	}

	return &RecipeWithAuthor{Recipe: recipe, AuthorName: names[recipe.UserID]}, nil
}

// ListRecipes lists recipes newest first, applying the filter.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]RecipeWithAuthor, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if search := strings.TrimSpace(filter.Query); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)

		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		}
	} else {
		query = query.Order("created_at DESC")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, recipes)
}

// UpdateRecipe edits a recipe in place. The write is filtered by both the
// recipe id and the owner's id, so a non-owner's update affects zero rows.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, recipe *models.Recipe) (*RecipeWithAuthor, error) {
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        recipe.Title,
		"description":  recipe.Description,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
		"cooking_time": recipe.CookingTime,
		"difficulty":   recipe.Difficulty,
		"category":     recipe.Category,
		"embedding":    GenerateEmbedding(recipe.Title + " " + recipe.Description),
	}
	if recipe.ImageURL != "" {
		updates["image_url"] = recipe.ImageURL
	}

	result := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, s.notFoundOrNotOwner(ctx, id)
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe, filtered by id and owner id.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return s.notFoundOrNotOwner(ctx, id)
	}
	return nil
}

// notFoundOrNotOwner distinguishes a missing recipe from an ownership
// mismatch after a zero-row write.
func (s *RecipeService) notFoundOrNotOwner(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrNotOwner
}

func (s *RecipeService) withAuthors(ctx context.Context, recipes []models.Recipe) ([]RecipeWithAuthor, error) {
	ids := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.UserID)
	}

	names, err := s.authorNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]RecipeWithAuthor, len(recipes))
	for i, r := range recipes {
		result[i] = RecipeWithAuthor{Recipe: r, AuthorName: names[r.UserID]}
	}
	return result, nil
}

// authorNames resolves display names for the given user ids via a secondary
// profile lookup. Users without a profile fall back to a placeholder.
func (s *RecipeService) authorNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(userIDs))
	for _, id := range userIDs {
		names[id] = UnknownAuthor
	}
	if len(userIDs) == 0 {
		return names, nil
	}

	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.FullName != "" {
			names[p.UserID] = p.FullName
		} else if p.Username != "" {
			names[p.UserID] = p.Username
		}
	}
	return names, nil
}

func validateRecipe(recipe *models.Recipe) error {
	if strings.TrimSpace(recipe.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(recipe.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if recipe.CookingTime <= 0 {
		return fmt.Errorf("%w: cooking_time must be a positive number of minutes", ErrInvalidInput)
	}
	if !models.IsValidDifficulty(recipe.Difficulty) {
		return fmt.Errorf("%w: difficulty must be one of easy, medium, hard", ErrInvalidInput)
	}
	if !models.IsValidCategory(recipe.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, recipe.Category)
	}
	return nil
}
