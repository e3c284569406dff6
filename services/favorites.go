package services

import (
	"context"
	"errors"
	"log/slog"

	"recipe-api/apperr"
	"recipe-api/models"
	"recipe-api/store"
)

type FavoriteService struct {
	store store.Manager
	log   *slog.Logger
}

func NewFavoriteService(st store.Manager, log *slog.Logger) *FavoriteService {
	return &FavoriteService{store: st, log: log}
}

// Toggle adds the recipe to the user's favorites, or removes it if it is
// already there. It reports whether the recipe is favorited afterwards.
func (s *FavoriteService) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	if _, err := s.store.Recipes().GetByID(ctx, recipeID); err != nil {
		return false, storeErr(err, "load recipe", "Recipe not found", "")
	}

	fav, err := s.store.Favorites().Get(ctx, userID, recipeID)
	switch {
	case err == nil:
		if err := s.store.Favorites().Delete(ctx, fav.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return false, apperr.Internal("remove favorite failed", err)
		}
		return false, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, apperr.Internal("load favorite failed", err)
	}

	err = s.store.Favorites().Create(ctx, &models.Favorite{UserID: userID, RecipeID: recipeID})
	if err != nil && !errors.Is(err, store.ErrConflict) {
		return false, apperr.Internal("add favorite failed", err)
	}
	return true, nil
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]RecipeSummary, error) {
	favs, err := s.store.Favorites().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list favorites failed", err)
	}
	out := make([]RecipeSummary, 0, len(favs))
	for _, f := range favs {
		if f.Recipe == nil {
			continue
		}
		out = append(out, NewRecipeSummary(*f.Recipe))
	}
	return out, nil
}

func (s *FavoriteService) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	_, err := s.store.Favorites().Get(ctx, userID, recipeID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	}
	return false, apperr.Internal("load favorite failed", err)
}
