package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"recipe-api/models"
	"recipe-api/testutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrConflict)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrConflict)
	assert.ErrorIs(t, translate(errors.New("UNIQUE constraint failed: users.email")), ErrConflict)

	other := errors.New("disk full")
	assert.Equal(t, other, translate(other))
	assert.NotErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), ErrConflict)
}

func TestUsers_CreateAndLookup(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	u := &models.User{FirstName: "Ada", LastName: "Obi", Email: "  Ada@Example.COM ", PasswordHash: "h"}
	require.NoError(t, s.Users().Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)

	byID, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.FirstName)

	byEmail, err := s.Users().GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_DuplicateEmailIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, &models.User{FirstName: "A", LastName: "B", Email: "dup@x.io", PasswordHash: "h"}))
	err := s.Users().Create(ctx, &models.User{FirstName: "C", LastName: "D", Email: "DUP@x.io", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUsers_EmailTakenExcludesSelf(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "A", "A", "a@x.io")
	b := testutil.CreateUser(t, db, "B", "B", "b@x.io")

	taken, err := s.Users().EmailTaken(ctx, "a@x.io", a.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.Users().EmailTaken(ctx, "A@X.io", b.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUsers_UpdateSelectedColumnsOnly(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "Old", "Name", "old@x.io")
	before := u.UpdatedAt

	u.FirstName = "New"
	u.LastName = "ignored"
	require.NoError(t, s.Users().Update(ctx, u, "first_name"))

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.FirstName)
	assert.Equal(t, "Name", got.LastName)
	assert.False(t, got.UpdatedAt.Before(before))

	err = s.Users().Update(ctx, &models.User{ID: "missing"}, "first_name")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipes_ListFiltersAndPagination(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "Chi", "Eze", "chi@x.io")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		r := &models.Recipe{
			Name:         fmt.Sprintf("Jollof %d", i),
			Category:     "Nigerian",
			CookingTime:  20 + i*5,
			PrepTime:     10,
			Rating:       float64(i%6) * 0.9,
			Description:  "party rice",
			Ingredients:  []models.Ingredient{{Name: "rice"}},
			Instructions: []models.Instruction{{Step: 1, Text: "cook"}},
			Image:        models.PlaceholderImage,
			UserID:       owner.ID,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.Recipes().Create(ctx, r))
	}
	other := testutil.CreateRecipe(t, db, owner.ID, "Pepper Soup")
	require.NoError(t, db.Model(other).Updates(map[string]any{"category": "Soup", "description": "Spicy GOAT broth"}).Error)

	page, total, err := s.Recipes().List(ctx, RecipeFilter{Search: "JOLLOF"}, 5, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, page, 5)
	assert.Equal(t, "Jollof 6", page[0].Name)
	require.NotNil(t, page[0].User)
	assert.Equal(t, "Chi Eze", page[0].AuthorName())

	bySearchInDescription, total, err := s.Recipes().List(ctx, RecipeFilter{Search: "goat"}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Pepper Soup", bySearchInDescription[0].Name)

	_, total, err = s.Recipes().List(ctx, RecipeFilter{Category: "Soup"}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	fast, total, err := s.Recipes().List(ctx, RecipeFilter{MaxCookingTime: ptr(30), MinRating: ptr(0.5)}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range fast {
		assert.LessOrEqual(t, r.CookingTime, 30)
		assert.GreaterOrEqual(t, r.Rating, 0.5)
	}
}

func TestRecipes_SearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "Chi", "Eze", "chi@x.io")
	testutil.CreateRecipe(t, db, owner.ID, "Jollof Rice")
	testutil.CreateRecipe(t, db, owner.ID, "Egusi Soup")
	literal := testutil.CreateRecipe(t, db, owner.ID, `100% Zobo_drink \ chilled`)

	for _, term := range []string{"%", "_", `\`} {
		t.Run(term, func(t *testing.T) {
			got, total, err := s.Recipes().List(ctx, RecipeFilter{Search: term}, 0, 20)
			require.NoError(t, err)
			assert.EqualValues(t, 1, total)
			require.Len(t, got, 1)
			assert.Equal(t, literal.ID, got[0].ID)
		})
	}
}

func TestRecipes_UpdateKeepsOwnerAndUnselectedFields(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "A", "B", "a@x.io")
	r := testutil.CreateRecipe(t, db, owner.ID, "Moi Moi")

	loaded, err := s.Recipes().GetByID(ctx, r.ID)
	require.NoError(t, err)
	loaded.Name = "Moin Moin"
	loaded.Description = "not saved"
	require.NoError(t, s.Recipes().Update(ctx, loaded, "name"))

	got, err := s.Recipes().GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Moin Moin", got.Name)
	assert.Empty(t, got.Description)
	assert.Equal(t, owner.ID, got.UserID)
	assert.Equal(t, []models.Ingredient{{Name: "rice", Quantity: "2", Unit: "cups"}}, got.Ingredients)
}

func TestFavorites_UniquePairAndCascadeHelpers(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "Alice", "A", "alice@x.io")
	bob := testutil.CreateUser(t, db, "Bob", "B", "bob@x.io")
	aliceRecipe := testutil.CreateRecipe(t, db, alice.ID, "Egusi")
	bobRecipe := testutil.CreateRecipe(t, db, bob.ID, "Suya")

	require.NoError(t, s.Favorites().Create(ctx, &models.Favorite{UserID: bob.ID, RecipeID: aliceRecipe.ID}))
	require.NoError(t, s.Favorites().Create(ctx, &models.Favorite{UserID: alice.ID, RecipeID: bobRecipe.ID}))
	err := s.Favorites().Create(ctx, &models.Favorite{UserID: bob.ID, RecipeID: aliceRecipe.ID})
	assert.ErrorIs(t, err, ErrConflict)

	favs, err := s.Favorites().ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.NotNil(t, favs[0].Recipe)
	assert.Equal(t, "Alice A", favs[0].Recipe.AuthorName())

	n, err := s.Favorites().DeleteByRecipeOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	count, err := s.Favorites().CountByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "A", "B", "a@x.io")
	testutil.CreateRecipe(t, db, u.ID, "Akara")

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx Manager) error {
		if _, err := tx.Recipes().DeleteByUser(ctx, u.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Recipes().CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
