package store

import (
	"context"

	"recipe-api/models"

	"gorm.io/gorm"
)

type Favorites interface {
	Create(ctx context.Context, f *models.Favorite) error
	Get(ctx context.Context, userID, recipeID string) (*models.Favorite, error)
	Delete(ctx context.Context, id string) error
	// ListByUser returns the user's favorites, newest first, with each
	// recipe and its owner loaded.
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByRecipe(ctx context.Context, recipeID string) (int64, error)
	// DeleteByRecipeOwner removes every favorite, by any user, that points
	// at a recipe owned by ownerID.
	DeleteByRecipeOwner(ctx context.Context, ownerID string) (int64, error)
}

type favoriteRepo struct {
	db *gorm.DB
}

func (r *favoriteRepo) Create(ctx context.Context, f *models.Favorite) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Recipe").Create(f).Error)
}

func (r *favoriteRepo) Get(ctx context.Context, userID, recipeID string) (*models.Favorite, error) {
	var f models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&f).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *favoriteRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Favorite{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	favs := []models.Favorite{}
	err := r.db.WithContext(ctx).
		Preload("Recipe.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	if err != nil {
		return nil, translate(err)
	}
	return favs, nil
}

func (r *favoriteRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&n).Error
	return n, translate(err)
}

func (r *favoriteRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Favorite{})
	return res.RowsAffected, translate(res.Error)
}

func (r *favoriteRepo) DeleteByRecipe(ctx context.Context, recipeID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&models.Favorite{})
	return res.RowsAffected, translate(res.Error)
}

func (r *favoriteRepo) DeleteByRecipeOwner(ctx context.Context, ownerID string) (int64, error) {
	owned := r.db.Model(&models.Recipe{}).Select("id").Where("user_id = ?", ownerID)
	res := r.db.WithContext(ctx).Where("recipe_id IN (?)", owned).Delete(&models.Favorite{})
	return res.RowsAffected, translate(res.Error)
}
