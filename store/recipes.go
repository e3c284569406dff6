package store

import (
	"context"
	"strings"
	"time"

	"recipe-api/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows ListRecipes. Zero values disable a filter.
type RecipeFilter struct {
	Search         string
	Category       string
	MinRating      *float64
	MaxCookingTime *int
}

type Recipes interface {
	Create(ctx context.Context, r *models.Recipe) error
	// GetByID loads the recipe with its owner.
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	// List returns one page, newest first, with owners loaded, and the
	// total number of matching recipes.
	List(ctx context.Context, f RecipeFilter, offset, limit int) ([]models.Recipe, int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Recipe, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// Update writes only the named columns of r.
	Update(ctx context.Context, r *models.Recipe, columns ...string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type recipeRepo struct {
	db *gorm.DB
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (f RecipeFilter) scope(db *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		db = db.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		db = db.Where("category = ?", c)
	}
	if f.MinRating != nil {
		db = db.Where("rating >= ?", *f.MinRating)
	}
	if f.MaxCookingTime != nil {
		db = db.Where("cooking_time <= ?", *f.MaxCookingTime)
	}
	return db
}

func (r *recipeRepo) Create(ctx context.Context, rec *models.Recipe) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(rec).Error)
}

func (r *recipeRepo) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var rec models.Recipe
	if err := r.db.WithContext(ctx).Preload("User").First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *recipeRepo) List(ctx context.Context, f RecipeFilter, offset, limit int) ([]models.Recipe, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	recipes := []models.Recipe{}
	err := r.db.WithContext(ctx).
		Scopes(f.scope).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return recipes, total, nil
}

func (r *recipeRepo) ListByUser(ctx context.Context, userID string) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, translate(err)
	}
	return recipes, nil
}

func (r *recipeRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", userID).Count(&n).Error
	return n, translate(err)
}

func (r *recipeRepo) Update(ctx context.Context, rec *models.Recipe, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	rec.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(rec).Omit("User").Select(append(columns, "updated_at")).Updates(rec)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recipeRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recipeRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Recipe{})
	return res.RowsAffected, translate(res.Error)
}
