package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/roster-admin-api/internal/models"
	"github.com/noah-isme/roster-admin-api/pkg/kvstore"
)

// FieldRepository persists the custom field definitions as one ordered
// collection under the customFields key, replaced whole on every write.
type FieldRepository struct {
	store kvstore.Store
}

// NewFieldRepository constructs a FieldRepository.
func NewFieldRepository(store kvstore.Store) *FieldRepository {
	return &FieldRepository{store: store}
}

// List returns all field definitions in insertion order.
func (r *FieldRepository) List(ctx context.Context) ([]models.CustomField, error) {
	var fields []models.CustomField
	if err := r.store.Get(ctx, KeyCustomFields, &fields); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load custom fields: %w", err)
	}
	return fields, nil
}

// Replace writes the full definition list.
func (r *FieldRepository) Replace(ctx context.Context, fields []models.CustomField) error {
	if err := r.store.Set(ctx, KeyCustomFields, fields); err != nil {
		return fmt.Errorf("persist custom fields: %w", err)
	}
	return nil
}
