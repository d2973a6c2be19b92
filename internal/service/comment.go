package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dishly/backend/internal/database"
	"github.com/dishly/backend/internal/models"
)

// CommentWithAuthor pairs a comment with its author's display name.
type CommentWithAuthor struct {
	models.RecipeComment
	AuthorName string `json:"author_name"`
}

// CommentService handles the comment lifecycle.
type CommentService struct {
	db       *gorm.DB
	resolver *database.TableResolver
	recipes  *RecipeService
}

func NewCommentService(db *gorm.DB, resolver *database.TableResolver) *CommentService {
	return &CommentService{
		db:       db,
		resolver: resolver,
		recipes:  NewRecipeService(db),
	}
}

// Add creates a comment by userID on recipeID. Content must be non-empty
// after trimming.
func (s *CommentService) Add(ctx context.Context, userID, recipeID uuid.UUID, content string) (*models.RecipeComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	// The recipe must exist; the comment table has no FK on legacy schemas.
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	table, err := s.resolver.Resolve(database.EntityComments)
	if err != nil {
		return nil, err
	}

	comment := models.RecipeComment{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		RecipeID:  recipeID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.db.WithContext(ctx).Table(table).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment. The delete is filtered by both the comment id
// and the author's id, so only the author can remove it.
func (s *CommentService) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	table, err := s.resolver.Resolve(database.EntityComments)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Table(table).
		Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&models.RecipeComment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Table(table).Where("id = ?", commentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrNotOwner
	}
	return nil
}

// List returns a recipe's comments newest first, with author display names
// resolved through a secondary profile lookup.
func (s *CommentService) List(ctx context.Context, recipeID uuid.UUID) ([]CommentWithAuthor, error) {
	table, err := s.resolver.Resolve(database.EntityComments)
	if err != nil {
		return nil, err
	}

	var comments []models.RecipeComment
	if err := s.db.WithContext(ctx).Table(table).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	names, err := s.recipes.authorNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]CommentWithAuthor, len(comments))
	for i, c := range comments {
		result[i] = CommentWithAuthor{RecipeComment: c, AuthorName: names[c.UserID]}
	}
	return result, nil
}
