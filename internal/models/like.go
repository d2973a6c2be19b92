package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeLike marks a user's approval of a recipe. A user can like a recipe
// at most once; the pair is toggled rather than created/removed separately.
type RecipeLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_likes_user_recipe" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_likes_user_recipe" json:"user_id"`
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}

func (l *RecipeLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
