package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"recipe-api/apperr"
	"recipe-api/media"
	"recipe-api/models"
	"recipe-api/store"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit inside a 32-bit int.
	MaxPage = math.MaxInt32 / MaxLimit
)

// RecipeFields is the client-supplied part of a recipe. A nil field was
// not sent; on create it takes its default, on update it is left alone.
type RecipeFields struct {
	Name         *string
	Category     *string
	CookingTime  *int
	PrepTime     *int
	Rating       *float64
	Description  *string
	Ingredients  *[]models.Ingredient
	Instructions *[]models.Instruction
}

func (f RecipeFields) empty() bool {
	return f.Name == nil && f.Category == nil && f.CookingTime == nil && f.PrepTime == nil &&
		f.Rating == nil && f.Description == nil && f.Ingredients == nil && f.Instructions == nil
}

// received summarizes the required fields for an InvalidInput detail.
func (f RecipeFields) received() string {
	name := "<missing>"
	if f.Name != nil {
		name = fmt.Sprintf("%q", *f.Name)
	}
	count := func(n int, present bool) string {
		if !present {
			return "<missing>"
		}
		return fmt.Sprintf("%d", n)
	}
	var ing, ins int
	if f.Ingredients != nil {
		ing = len(*f.Ingredients)
	}
	if f.Instructions != nil {
		ins = len(*f.Instructions)
	}
	return fmt.Sprintf("received name=%s ingredients=%s instructions=%s",
		name, count(ing, f.Ingredients != nil), count(ins, f.Instructions != nil))
}

// ListQuery is the parsed list request. Page and Limit are normalized by
// ListRecipes.
type ListQuery struct {
	Filter store.RecipeFilter
	Page   int
	Limit  int
}

type RecipeService struct {
	store    store.Manager
	uploader media.Uploader
	log      *slog.Logger
}

func NewRecipeService(st store.Manager, uploader media.Uploader, log *slog.Logger) *RecipeService {
	return &RecipeService{store: st, uploader: uploader, log: log}
}

func validateNumbers(f RecipeFields) error {
	if f.CookingTime != nil && *f.CookingTime < 0 {
		return apperr.InvalidInput("cookingTime cannot be negative")
	}
	if f.PrepTime != nil && *f.PrepTime < 0 {
		return apperr.InvalidInput("prepTime cannot be negative")
	}
	if f.Rating != nil {
		r := *f.Rating
		if math.IsNaN(r) || r < models.MinRating || r > models.MaxRating {
			return apperr.InvalidInput("rating must be between 0 and 5")
		}
	}
	return nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, userID string, f RecipeFields, image []byte) (*models.Recipe, error) {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		return nil, apperr.InvalidInput("Recipe name is required").WithDetails(f.received())
	}
	if f.Ingredients == nil || len(*f.Ingredients) == 0 {
		return nil, apperr.InvalidInput("At least one ingredient is required").WithDetails(f.received())
	}
	if f.Instructions == nil || len(*f.Instructions) == 0 {
		return nil, apperr.InvalidInput("At least one instruction is required").WithDetails(f.received())
	}
	if err := validateNumbers(f); err != nil {
		return nil, err
	}
	ingredients, err := cleanIngredients(*f.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := cleanInstructions(*f.Instructions)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, storeErr(err, "load owner", "User not found", "")
	}

	rec := &models.Recipe{
		Name:         strings.TrimSpace(*f.Name),
		Category:     models.DefaultCategory,
		CookingTime:  models.DefaultCookingTime,
		PrepTime:     models.DefaultPrepTime,
		Ingredients:  ingredients,
		Instructions: instructions,
		Image:        models.PlaceholderImage,
		UserID:       userID,
	}
	if f.Category != nil {
		if c := strings.TrimSpace(*f.Category); c != "" {
			rec.Category = c
		}
	}
	if f.CookingTime != nil {
		rec.CookingTime = *f.CookingTime
	}
	if f.PrepTime != nil {
		rec.PrepTime = *f.PrepTime
	}
	if f.Rating != nil {
		rec.Rating = *f.Rating
	}
	if f.Description != nil {
		rec.Description = strings.TrimSpace(*f.Description)
	}

	if len(image) > 0 {
		url, err := s.uploader.Upload(ctx, image, media.FolderRecipes)
		if err != nil {
			s.log.WarnContext(ctx, "recipe image upload failed, using placeholder", "user_id", userID, "error", err)
		} else {
			rec.Image = url
		}
	}

	if err := s.store.Recipes().Create(ctx, rec); err != nil {
		return nil, storeErr(err, "create recipe", "", "")
	}
	s.log.InfoContext(ctx, "recipe created", "recipe_id", rec.ID, "user_id", userID)
	return rec, nil
}

// loadOwned fetches a recipe and checks that userID owns it. Role plays no part.
func (s *RecipeService) loadOwned(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	rec, err := s.store.Recipes().GetByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr(err, "load recipe", "Recipe not found", "")
	}
	if rec.UserID != userID {
		return nil, apperr.Forbidden("You can only modify your own recipes")
	}
	return rec, nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, f RecipeFields, image []byte) (*models.Recipe, error) {
	rec, err := s.loadOwned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if f.empty() && len(image) == 0 {
		return nil, apperr.InvalidInput("No fields to update")
	}
	if err := validateNumbers(f); err != nil {
		return nil, err
	}

	var columns []string
	if f.Name != nil {
		if rec.Name, err = trimmedNonEmpty("name", f.Name); err != nil {
			return nil, err
		}
		columns = append(columns, "name")
	}
	if f.Category != nil {
		if rec.Category, err = trimmedNonEmpty("category", f.Category); err != nil {
			return nil, err
		}
		columns = append(columns, "category")
	}
	if f.CookingTime != nil {
		rec.CookingTime = *f.CookingTime
		columns = append(columns, "cooking_time")
	}
	if f.PrepTime != nil {
		rec.PrepTime = *f.PrepTime
		columns = append(columns, "prep_time")
	}
	if f.Rating != nil {
		rec.Rating = *f.Rating
		columns = append(columns, "rating")
	}
	if f.Description != nil {
		rec.Description = strings.TrimSpace(*f.Description)
		columns = append(columns, "description")
	}
	if f.Ingredients != nil {
		if len(*f.Ingredients) == 0 {
			return nil, apperr.InvalidInput("At least one ingredient is required")
		}
		if rec.Ingredients, err = cleanIngredients(*f.Ingredients); err != nil {
			return nil, err
		}
		columns = append(columns, "ingredients")
	}
	if f.Instructions != nil {
		if len(*f.Instructions) == 0 {
			return nil, apperr.InvalidInput("At least one instruction is required")
		}
		if rec.Instructions, err = cleanInstructions(*f.Instructions); err != nil {
			return nil, err
		}
		columns = append(columns, "instructions")
	}

	if len(image) > 0 {
		url, err := s.uploader.Upload(ctx, image, media.FolderRecipes)
		if err != nil {
			s.log.WarnContext(ctx, "recipe image upload failed, keeping current image", "recipe_id", recipeID, "error", err)
		} else {
			rec.Image = url
			columns = append(columns, "image")
		}
	}

	if len(columns) > 0 {
		if err := s.store.Recipes().Update(ctx, rec, columns...); err != nil {
			return nil, storeErr(err, "update recipe", "Recipe not found", "")
		}
	}
	return rec, nil
}

// DeleteRecipe removes the recipe and every favorite pointing at it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	if _, err := s.loadOwned(ctx, userID, recipeID); err != nil {
		return err
	}
	err := s.store.WithTx(ctx, func(tx store.Manager) error {
		if _, err := tx.Favorites().DeleteByRecipe(ctx, recipeID); err != nil {
			return err
		}
		return tx.Recipes().Delete(ctx, recipeID)
	})
	if err != nil {
		return storeErr(err, "delete recipe", "Recipe not found", "")
	}
	s.log.InfoContext(ctx, "recipe deleted", "recipe_id", recipeID, "user_id", userID)
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func (s *RecipeService) ListRecipes(ctx context.Context, q ListQuery) (*RecipePage, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	recipes, total, err := s.store.Recipes().List(ctx, q.Filter, (page-1)*limit, limit)
	if err != nil {
		return nil, apperr.Internal("list recipes failed", err)
	}
	out := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeSummary(r))
	}
	return &RecipePage{
		Recipes: out,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
			TotalRecipes: total,
			Limit:        limit,
		},
	}, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, recipeID string) (*RecipeDetail, error) {
	rec, err := s.store.Recipes().GetByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr(err, "load recipe", "Recipe not found", "")
	}
	d := NewRecipeDetail(*rec)
	return &d, nil
}

// ListByUser returns the user's recipes newest first. An unknown user
// simply has none.
func (s *RecipeService) ListByUser(ctx context.Context, userID string) ([]models.Recipe, error) {
	recipes, err := s.store.Recipes().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list user recipes failed", err)
	}
	return recipes, nil
}
