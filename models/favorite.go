package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is one user's bookmark of one recipe. The (user, recipe) pair is unique.
type Favorite struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID  string    `json:"recipeId" gorm:"size:36;not null;uniqueIndex:idx_favorites_user_recipe;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *Recipe   `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// All returns every model in migration order.
func All() []any {
	return []any{&User{}, &Recipe{}, &Favorite{}}
}
