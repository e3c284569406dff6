// Package store is the persistence layer: one repository per model, all
// sharing a gorm handle that is either the root connection or a transaction.
package store

import (
	"context"

	"gorm.io/gorm"
)

// Manager hands out repositories bound to one handle and runs transactions.
type Manager interface {
	Users() Users
	Recipes() Recipes
	Favorites() Favorites
	// WithTx runs fn in a transaction. fn must use the Manager it receives;
	// the transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Manager) error) error
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() Users         { return &userRepo{db: s.db} }
func (s *Store) Recipes() Recipes     { return &recipeRepo{db: s.db} }
func (s *Store) Favorites() Favorites { return &favoriteRepo{db: s.db} }

func (s *Store) WithTx(ctx context.Context, fn func(tx Manager) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
