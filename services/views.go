package services

import (
	"time"

	"recipe-api/models"
)

// PublicUser is a user as returned to its owner. It never carries the password hash.
type PublicUser struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewPublicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type ProfileStats struct {
	RecipesCreated int64 `json:"recipesCreated"`
	Favorites      int64 `json:"favorites"`
	Reviews        int   `json:"reviews"`
}

type Profile struct {
	User  PublicUser   `json:"user"`
	Stats ProfileStats `json:"stats"`
}

// PublicProfile is what anyone may see about a user.
type PublicProfile struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	JoinedAt     time.Time `json:"joinedAt"`
	RecipesCount int64     `json:"recipesCount"`
}

// RecipeSummary is a list entry annotated with the owner's display name.
type RecipeSummary struct {
	models.Recipe
	AuthorName string `json:"authorName"`
}

func NewRecipeSummary(r models.Recipe) RecipeSummary {
	return RecipeSummary{Recipe: r, AuthorName: r.AuthorName()}
}

type Author struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name"`
	JoinedAt *time.Time `json:"joinedAt,omitempty"`
}

type RecipeDetail struct {
	models.Recipe
	Author Author `json:"author"`
}

func NewRecipeDetail(r models.Recipe) RecipeDetail {
	d := RecipeDetail{Recipe: r, Author: Author{ID: r.UserID, Name: r.AuthorName()}}
	if r.User != nil {
		joined := r.User.CreatedAt
		d.Author.JoinedAt = &joined
	}
	return d
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecipes int64 `json:"totalRecipes"`
	Limit        int   `json:"limit"`
}

type RecipePage struct {
	Recipes    []RecipeSummary `json:"recipes"`
	Pagination Pagination      `json:"pagination"`
}
