package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/roster-admin-api/internal/models"
	"github.com/noah-isme/roster-admin-api/pkg/kvstore"
)

// UserRepository reads the provisioned credential set. Credentials are
// seeded at bootstrap and never mutated at runtime.
type UserRepository struct {
	store kvstore.Store
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(store kvstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns all credentials. An absent collection reads as empty.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Get(ctx, KeyUsers, &users); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// Replace writes the whole credential set, used by bootstrap seeding.
func (r *UserRepository) Replace(ctx context.Context, users []models.User) error {
	if err := r.store.Set(ctx, KeyUsers, users); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}
