package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/roster-admin-api/internal/models"
	"github.com/noah-isme/roster-admin-api/pkg/kvstore"
)

// SessionRepository persists the single active session identity under the
// authUser key. At most one identity exists; re-login overwrites it.
type SessionRepository struct {
	store kvstore.Store
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(store kvstore.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Get loads the persisted identity, or nil when unauthenticated.
func (r *SessionRepository) Get(ctx context.Context) (*models.AuthUser, error) {
	var identity models.AuthUser
	if err := r.store.Get(ctx, KeyAuthUser, &identity); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session identity: %w", err)
	}
	return &identity, nil
}

// Set persists the identity, replacing any previous session.
func (r *SessionRepository) Set(ctx context.Context, identity models.AuthUser) error {
	if err := r.store.Set(ctx, KeyAuthUser, identity); err != nil {
		return fmt.Errorf("persist session identity: %w", err)
	}
	return nil
}

// Clear removes the persisted identity unconditionally.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeyAuthUser); err != nil {
		return fmt.Errorf("clear session identity: %w", err)
	}
	return nil
}
