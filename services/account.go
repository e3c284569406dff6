package services

import (
	"context"
	"errors"
	"log/slog"

	"recipe-api/apperr"
	"recipe-api/media"
	"recipe-api/models"
	"recipe-api/store"
)

// ProfileUpdate carries the optional profile fields; nil means "leave as is".
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (u ProfileUpdate) empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil
}

type AccountService struct {
	store    store.Manager
	hasher   PasswordHasher
	uploader media.Uploader
	log      *slog.Logger
}

func NewAccountService(st store.Manager, hasher PasswordHasher, uploader media.Uploader, log *slog.Logger) *AccountService {
	return &AccountService{store: st, hasher: hasher, uploader: uploader, log: log}
}

func (s *AccountService) getUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "load user", "User not found", "")
	}
	return u, nil
}

// GetProfile returns the caller's profile with recipe and favorite counts.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.store.Recipes().CountByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("count recipes failed", err)
	}
	favorites, err := s.store.Favorites().CountByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("count favorites failed", err)
	}
	return &Profile{
		User:  NewPublicUser(u),
		Stats: ProfileStats{RecipesCreated: recipes, Favorites: favorites},
	}, nil
}

// UpdateProfile applies the fields present in upd. A new email must be
// well formed and not held by another user.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*PublicUser, error) {
	if upd.empty() {
		return nil, apperr.InvalidInput("At least one field (firstName, lastName, email) is required")
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var columns []string
	if upd.FirstName != nil {
		if u.FirstName, err = trimmedNonEmpty("firstName", upd.FirstName); err != nil {
			return nil, err
		}
		columns = append(columns, "first_name")
	}
	if upd.LastName != nil {
		if u.LastName, err = trimmedNonEmpty("lastName", upd.LastName); err != nil {
			return nil, err
		}
		columns = append(columns, "last_name")
	}
	if upd.Email != nil {
		if !ValidEmail(*upd.Email) {
			return nil, apperr.InvalidInput("Invalid email format")
		}
		email := models.NormalizeEmail(*upd.Email)
		taken, err := s.store.Users().EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, apperr.Internal("email lookup failed", err)
		}
		if taken {
			return nil, apperr.Conflict("Email is already in use by another account")
		}
		u.Email = email
		columns = append(columns, "email")
	}

	// The unique index is the final word when two updates race for one email.
	if err := s.store.Users().Update(ctx, u, columns...); err != nil {
		return nil, storeErr(err, "update profile", "User not found", "Email is already in use by another account")
	}
	pu := NewPublicUser(u)
	return &pu, nil
}

// ChangePassword replaces the hash after re-verifying the current password.
// Tokens issued before the change stay valid until they expire.
func (s *AccountService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.InvalidInput("Current password and new password are required")
	}
	if len(newPassword) < MinPasswordLength {
		return apperr.InvalidInput("New password must be at least 6 characters")
	}
	if len(newPassword) > MaxPasswordLength {
		return apperr.InvalidInput("New password must be at most 72 bytes")
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(u.PasswordHash, oldPassword) {
		return apperr.Unauthorized("Current password is incorrect")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal("Failed to hash password", err)
	}
	u.PasswordHash = hash
	if err := s.store.Users().Update(ctx, u, "password"); err != nil {
		return storeErr(err, "update password", "User not found", "")
	}
	s.log.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

// UpdateAvatar uploads the image and returns its URL. The URL is not stored
// on the user record; users have no avatar column.
func (s *AccountService) UpdateAvatar(ctx context.Context, userID string, image []byte) (string, error) {
	if len(image) == 0 {
		return "", apperr.InvalidInput("No image file provided")
	}
	url, err := s.uploader.Upload(ctx, image, media.FolderAvatars)
	if err != nil {
		s.log.WarnContext(ctx, "avatar upload failed", "user_id", userID, "error", err)
		return "", apperr.Upstream("Failed to upload avatar", err)
	}
	return url, nil
}

// DeleteAccount removes the user, their recipes, their favorites and every
// favorite pointing at their recipes, in one transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, userID, password string) error {
	if password == "" {
		return apperr.InvalidInput("Password is required to delete the account")
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return apperr.Unauthorized("Incorrect password")
	}

	var favs, foreignFavs, recipes int64
	err = s.store.WithTx(ctx, func(tx store.Manager) error {
		var err error
		if favs, err = tx.Favorites().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if foreignFavs, err = tx.Favorites().DeleteByRecipeOwner(ctx, userID); err != nil {
			return err
		}
		if recipes, err = tx.Recipes().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("delete account failed", err)
	}
	s.log.InfoContext(ctx, "account deleted",
		"user_id", userID, "recipes", recipes, "favorites", favs, "favorites_on_recipes", foreignFavs)
	return nil
}

// GetPublicProfile is readable without authentication and omits email.
func (s *AccountService) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	n, err := s.store.Recipes().CountByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("count recipes failed", err)
	}
	return &PublicProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		JoinedAt:     u.CreatedAt,
		RecipesCount: n,
	}, nil
}
