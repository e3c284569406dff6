package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"recipe-api/apperr"
	"recipe-api/models"
	"recipe-api/store"
)

const (
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit, in bytes.
	MaxPasswordLength = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks the local@domain.tld shape after trimming.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// storeErr classifies a store error: ErrNotFound becomes NotFound(notFoundMsg),
// ErrConflict becomes Conflict(conflictMsg), anything else is Internal.
func storeErr(err error, op, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound) && notFoundMsg != "":
		return apperr.NotFound(notFoundMsg)
	case errors.Is(err, store.ErrConflict) && conflictMsg != "":
		return apperr.Conflict(conflictMsg)
	}
	return apperr.Internal(op+" failed", err)
}

func trimmedNonEmpty(field string, v *string) (string, error) {
	s := strings.TrimSpace(*v)
	if s == "" {
		return "", apperr.InvalidInput(field + " cannot be empty")
	}
	return s, nil
}

func cleanIngredients(in []models.Ingredient) ([]models.Ingredient, error) {
	out := make([]models.Ingredient, 0, len(in))
	for i, ing := range in {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			return nil, apperr.InvalidInput(fmt.Sprintf("ingredient %d is missing a name", i+1))
		}
		out = append(out, models.Ingredient{
			Name:     name,
			Quantity: strings.TrimSpace(ing.Quantity),
			Unit:     strings.TrimSpace(ing.Unit),
		})
	}
	return out, nil
}

// cleanInstructions trims text and numbers unnumbered steps by position.
func cleanInstructions(in []models.Instruction) ([]models.Instruction, error) {
	out := make([]models.Instruction, 0, len(in))
	for i, ins := range in {
		text := strings.TrimSpace(ins.Text)
		if text == "" {
			return nil, apperr.InvalidInput(fmt.Sprintf("instruction %d is missing text", i+1))
		}
		step := ins.Step
		if step <= 0 {
			step = i + 1
		}
		out = append(out, models.Instruction{Step: step, Text: text})
	}
	return out, nil
}
