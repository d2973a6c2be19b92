package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dishly/backend/internal/database"
	"github.com/dishly/backend/internal/models"
)

const likeCountTTL = time.Minute

// LikeService handles like toggling and counting. The physical table name is
// pinned through the resolver; the Redis cache is optional.
type LikeService struct {
	db       *gorm.DB
	resolver *database.TableResolver
	cache    *redis.Client
}

func NewLikeService(db *gorm.DB, resolver *database.TableResolver, cache *redis.Client) *LikeService {
	return &LikeService{
		db:       db,
		resolver: resolver,
		cache:    cache,
	}
}

// Toggle flips the (user, recipe) like. The delete-or-insert runs in a single
// transaction so two concurrent toggles cannot both insert. Returns whether
// the recipe is liked after the call.
func (s *LikeService) Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	table, err := s.resolver.Resolve(database.EntityLikes)
	if err != nil {
		return false, err
	}

	var liked bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table(table).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&models.RecipeLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := models.RecipeLike{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UserID:    userID,
			RecipeID:  recipeID,
		}
		if err := tx.Table(table).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		s.cache.Del(ctx, likeCountKey(recipeID))
	}
	return liked, nil
}

// Count returns the number of likes on a recipe, served from the cache when
// fresh.
func (s *LikeService) Count(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, likeCountKey(recipeID)).Result(); err == nil {
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				return n, nil
			}
		}
	}

	table, err := s.resolver.Resolve(database.EntityLikes)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Table(table).Where("recipe_id = ?", recipeID).Count(&count).Error; err != nil {
		return 0, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, likeCountKey(recipeID), count, likeCountTTL)
	}
	return count, nil
}

// Liked reports whether the user has liked the recipe.
func (s *LikeService) Liked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	table, err := s.resolver.Resolve(database.EntityLikes)
	if err != nil {
		return false, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Table(table).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func likeCountKey(recipeID uuid.UUID) string {
	return fmt.Sprintf("like_count:%s", recipeID)
}
