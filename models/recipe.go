package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultCategory    = "Nigerian"
	DefaultCookingTime = 30
	DefaultPrepTime    = 10
	// PlaceholderImage is used whenever a recipe has no uploaded image.
	PlaceholderImage = "https://res.cloudinary.com/demo/image/upload/v1/recipes/placeholder.jpg"

	MinRating = 0.0
	MaxRating = 5.0
)

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

type Instruction struct {
	Step int    `json:"step"`
	Text string `json:"text"`
}

// Recipe numeric and category defaults are applied by the service layer,
// not by column defaults, so an explicit zero survives an insert.
type Recipe struct {
	ID           string        `json:"id" gorm:"primaryKey;size:36"`
	Name         string        `json:"name" gorm:"size:255;not null"`
	Category     string        `json:"category" gorm:"size:100;not null;index"`
	CookingTime  int           `json:"cookingTime" gorm:"not null"`
	PrepTime     int           `json:"prepTime" gorm:"not null"`
	Rating       float64       `json:"rating" gorm:"not null"`
	Description  string        `json:"description" gorm:"type:text;not null"`
	Ingredients  []Ingredient  `json:"ingredients" gorm:"serializer:json;type:text;not null"`
	Instructions []Instruction `json:"instructions" gorm:"serializer:json;type:text;not null"`
	Image        string        `json:"image" gorm:"size:1024;not null"`
	UserID       string        `json:"userId" gorm:"size:36;not null;index"`
	User         *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AuthorName is the owner's display name, or "Unknown" when the owner
// was not loaded or no longer exists.
func (r *Recipe) AuthorName() string {
	if r.User == nil {
		return "Unknown"
	}
	if name := r.User.DisplayName(); name != "" {
		return name
	}
	return "Unknown"
}
