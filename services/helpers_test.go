package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"recipe-api/logging"
	"recipe-api/middleware"
	"recipe-api/store"
	"recipe-api/testutil"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUploader struct {
	mu      sync.Mutex
	url     string
	err     error
	folders []string
}

func (f *fakeUploader) Upload(_ context.Context, data []byte, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, folder)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var errUpload = errors.New("cloud unavailable")

type env struct {
	db       *gorm.DB
	store    *store.Store
	uploader *fakeUploader
	auth     *AuthService
	account  *AccountService
	recipes  *RecipeService
	favs     *FavoriteService
}

func quietLogger() *slog.Logger {
	return logging.New(logging.Config{Level: "error", Output: io.Discard})
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	st := store.New(db)
	up := &fakeUploader{url: "https://cdn.example.com/recipes/abc.jpg"}
	hasher := NewPasswordHasher(bcrypt.MinCost)
	log := quietLogger()
	return &env{
		db:       db,
		store:    st,
		uploader: up,
		auth:     NewAuthService(st, hasher, middleware.NewTokenIssuer("test-secret", time.Hour), log),
		account:  NewAccountService(st, hasher, up, log),
		recipes:  NewRecipeService(st, up, log),
		favs:     NewFavoriteService(st, log),
	}
}

func ptr[T any](v T) *T { return &v }
