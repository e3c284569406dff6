// Package services holds the account, recipe and favorite workflows:
// validation, authorization and the multi-step writes behind each endpoint.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"recipe-api/apperr"
	"recipe-api/models"
	"recipe-api/store"
)

// TokenGenerator issues the bearer token returned on signup and login.
type TokenGenerator interface {
	GenerateToken(user *models.User) (string, error)
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthResult struct {
	Token string
	User  PublicUser
}

type AuthService struct {
	store  store.Manager
	hasher PasswordHasher
	tokens TokenGenerator
	log    *slog.Logger
}

func NewAuthService(st store.Manager, hasher PasswordHasher, tokens TokenGenerator, log *slog.Logger) *AuthService {
	return &AuthService{store: st, hasher: hasher, tokens: tokens, log: log}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, apperr.InvalidInput("First name and last name are required")
	}
	if !ValidEmail(in.Email) {
		return nil, apperr.InvalidInput("Invalid email format")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperr.InvalidInput("Password must be at least 6 characters")
	}
	if len(in.Password) > MaxPasswordLength {
		return nil, apperr.InvalidInput("Password must be at most 72 bytes")
	}
	email := models.NormalizeEmail(in.Email)

	_, err := s.store.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("Email already registered")
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperr.Internal("signup lookup failed", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password", err)
	}
	user := &models.User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, storeErr(err, "create user", "", "Email already registered")
	}
	s.log.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return s.result(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperr.InvalidInput("Email and password are required")
	}
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, apperr.Internal("login lookup failed", err)
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	return s.result(user)
}

func (s *AuthService) result(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperr.Internal("Failed to generate token", err)
	}
	return &AuthResult{Token: token, User: NewPublicUser(user)}, nil
}
