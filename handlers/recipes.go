package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"recipe-api/middleware"
	"recipe-api/services"
	"recipe-api/store"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	recipes   *services.RecipeService
	favorites *services.FavoriteService
	maxUpload int64
}

func NewRecipeHandler(recipes *services.RecipeService, favorites *services.FavoriteService, maxUpload int64) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, favorites: favorites, maxUpload: maxUpload}
}

// listQuery parses the list filters. Malformed numbers disable their
// filter, and bad page or limit values fall back to the defaults.
func listQuery(c *gin.Context) services.ListQuery {
	q := services.ListQuery{
		Filter: store.RecipeFilter{
			Search:   strings.TrimSpace(c.Query("search")),
			Category: strings.TrimSpace(c.Query("category")),
		},
	}
	if v, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil {
		q.Filter.MinRating = &v
	}
	if v, err := strconv.Atoi(c.Query("maxCookingTime")); err == nil {
		q.Filter.MaxCookingTime = &v
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.Limit, _ = strconv.Atoi(c.Query("limit"))
	return q
}

// List returns one page of recipes matching the query filters
func (h *RecipeHandler) List(c *gin.Context) {
	page, err := h.recipes.ListRecipes(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	rec, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": rec})
}

func (h *RecipeHandler) ListByUser(c *gin.Context) {
	recipes, err := h.recipes.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Create accepts JSON or multipart with an optional "image" file
func (h *RecipeHandler) Create(c *gin.Context) {
	fields, image, err := parseRecipe(c, h.maxUpload)
	if err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.recipes.CreateRecipe(c.Request.Context(), middleware.GetUserID(c), fields, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe created successfully", "recipe": rec})
}

func (h *RecipeHandler) Update(c *gin.Context) {
	fields, image, err := parseRecipe(c, h.maxUpload)
	if err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.recipes.UpdateRecipe(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), fields, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully", "recipe": rec})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.recipes.DeleteRecipe(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// ToggleFavorite adds or removes the recipe from the caller's favorites
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	on, err := h.favorites.Toggle(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "Recipe removed from favorites"
	if on {
		msg = "Recipe added to favorites"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "favorited": on})
}

func (h *RecipeHandler) FavoriteStatus(c *gin.Context) {
	on, err := h.favorites.IsFavorited(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": on})
}
