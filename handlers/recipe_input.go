package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"recipe-api/apperr"
	"recipe-api/models"
	"recipe-api/services"

	"github.com/gin-gonic/gin"
)

// recipeJSON is the application/json body for create and update. Numeric
// fields accept either JSON numbers or numeric strings.
type recipeJSON struct {
	Name         *string               `json:"name"`
	Category     *string               `json:"category"`
	CookingTime  json.RawMessage       `json:"cookingTime"`
	PrepTime     json.RawMessage       `json:"prepTime"`
	Rating       json.RawMessage       `json:"rating"`
	Description  *string               `json:"description"`
	Ingredients  *[]models.Ingredient  `json:"ingredients"`
	Instructions *[]models.Instruction `json:"instructions"`
}

// parseRecipe reads recipe fields from a JSON or multipart request, plus the
// optional "image" file part.
func parseRecipe(c *gin.Context, maxUpload int64) (services.RecipeFields, []byte, error) {
	if isMultipart(c) {
		return parseRecipeForm(c, maxUpload)
	}

	var body recipeJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		return services.RecipeFields{}, nil, bindError(err)
	}
	f := services.RecipeFields{
		Name:         body.Name,
		Category:     body.Category,
		Description:  body.Description,
		Ingredients:  body.Ingredients,
		Instructions: body.Instructions,
	}
	var err error
	if f.CookingTime, err = intField("cookingTime", rawText(body.CookingTime)); err != nil {
		return f, nil, err
	}
	if f.PrepTime, err = intField("prepTime", rawText(body.PrepTime)); err != nil {
		return f, nil, err
	}
	if f.Rating, err = floatField("rating", rawText(body.Rating)); err != nil {
		return f, nil, err
	}
	return f, nil, nil
}

// parseRecipeForm treats empty form values as absent. ingredients and
// instructions arrive as JSON-encoded arrays.
func parseRecipeForm(c *gin.Context, maxUpload int64) (services.RecipeFields, []byte, error) {
	var f services.RecipeFields
	text := func(key string) *string {
		v, ok := c.GetPostForm(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		return &v
	}

	f.Name = text("name")
	f.Category = text("category")
	f.Description = text("description")

	var err error
	if f.CookingTime, err = intField("cookingTime", text("cookingTime")); err != nil {
		return f, nil, err
	}
	if f.PrepTime, err = intField("prepTime", text("prepTime")); err != nil {
		return f, nil, err
	}
	if f.Rating, err = floatField("rating", text("rating")); err != nil {
		return f, nil, err
	}
	if raw := text("ingredients"); raw != nil {
		var v []models.Ingredient
		if err := json.Unmarshal([]byte(*raw), &v); err != nil {
			return f, nil, apperr.InvalidInput("ingredients must be a JSON array").WithDetails(err.Error())
		}
		f.Ingredients = &v
	}
	if raw := text("instructions"); raw != nil {
		var v []models.Instruction
		if err := json.Unmarshal([]byte(*raw), &v); err != nil {
			return f, nil, apperr.InvalidInput("instructions must be a JSON array").WithDetails(err.Error())
		}
		f.Instructions = &v
	}

	image, err := readUpload(c, "image", maxUpload)
	if err != nil {
		return f, nil, err
	}
	return f, image, nil
}

// rawText unwraps a JSON number or string; null and absent are nil.
func rawText(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	s = string(raw)
	return &s
}

func floatField(name string, v *string) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, apperr.InvalidInput(name + " must be a number")
	}
	return &f, nil
}

// intField truncates fractional input the way parseInt would.
func intField(name string, v *string) (*int, error) {
	f, err := floatField(name, v)
	if err != nil || f == nil {
		return nil, err
	}
	if math.Abs(*f) > math.MaxInt32 {
		return nil, apperr.InvalidInput(name + " is out of range")
	}
	n := int(math.Trunc(*f))
	return &n, nil
}
