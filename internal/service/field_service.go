package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-admin-api/internal/models"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
)

type fieldRepository interface {
	List(ctx context.Context) ([]models.CustomField, error)
	Replace(ctx context.Context, fields []models.CustomField) error
}

// CreateFieldRequest holds the payload for defining a new custom field.
// Key may be omitted; it is then derived from the label.
type CreateFieldRequest struct {
	Label    string           `json:"label" validate:"required"`
	Key      string           `json:"key"`
	Type     models.FieldType `json:"type" validate:"required"`
	Required bool             `json:"required"`
	Options  []string         `json:"options"`
}

// UpdateFieldRequest holds a partial field definition. Nil members are
// left untouched on the stored definition.
type UpdateFieldRequest struct {
	Label    *string           `json:"label"`
	Key      *string           `json:"key"`
	Type     *models.FieldType `json:"type"`
	Required *bool             `json:"required"`
	Options  *[]string         `json:"options"`
}

// FieldService is the schema registry: it owns the ordered set of custom
// field definitions that extend the student record shape. Duplicate keys
// are deliberately not rejected; the dashboard has always tolerated them
// and rejecting here would strand previously stored schemas.
type FieldService struct {
	repo      fieldRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFieldService constructs the field service.
func NewFieldService(repo fieldRepository, validate *validator.Validate, logger *zap.Logger) *FieldService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FieldService{repo: repo, validator: validate, logger: logger}
}

// List returns every field definition in insertion order.
func (s *FieldService) List(ctx context.Context) ([]models.CustomField, error) {
	fields, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list custom fields")
	}
	return fields, nil
}

// Create registers a new field definition, assigning a fresh id and
// deriving the key from the label when none is supplied. Options survive
// only on dropdown fields.
func (s *FieldService) Create(ctx context.Context, req CreateFieldRequest) (*models.CustomField, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid field payload")
	}
	if !models.ValidFieldType(req.Type) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown field type %q", req.Type))
	}

	key := req.Key
	if key == "" {
		key = models.DeriveFieldKey(req.Label)
	}

	field := models.CustomField{
		ID:       "cf-" + uuid.NewString(),
		Label:    req.Label,
		Key:      key,
		Type:     req.Type,
		Required: req.Required,
	}
	if req.Type == models.FieldDropdown {
		field.Options = req.Options
	}

	fields, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom fields")
	}
	fields = append(fields, field)
	if err := s.repo.Replace(ctx, fields); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist custom fields")
	}
	return &field, nil
}

// Update merges the partial payload over the stored definition. Unknown
// ids are a silent no-op and return nil. Moving the type away from
// dropdown clears the options list.
func (s *FieldService) Update(ctx context.Context, id string, req UpdateFieldRequest) (*models.CustomField, error) {
	if req.Type != nil && !models.ValidFieldType(*req.Type) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown field type %q", *req.Type))
	}

	fields, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom fields")
	}

	idx := -1
	for i := range fields {
		if fields[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.logger.Debug("field update on unknown id", zap.String("id", id))
		return nil, nil
	}

	field := fields[idx]
	if req.Label != nil {
		field.Label = *req.Label
	}
	if req.Key != nil {
		field.Key = *req.Key
	}
	if req.Type != nil {
		field.Type = *req.Type
	}
	if req.Options != nil {
		field.Options = *req.Options
	}
	if req.Required != nil {
		field.Required = *req.Required
	}
	if field.Type != models.FieldDropdown {
		field.Options = nil
	}

	fields[idx] = field
	if err := s.repo.Replace(ctx, fields); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist custom fields")
	}
	return &field, nil
}

// Delete removes the definition with the given id. Unknown ids are a
// silent no-op. Records keep any values stored under the removed key;
// there is no cascade or garbage collection.
func (s *FieldService) Delete(ctx context.Context, id string) error {
	fields, err := s.repo.List(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom fields")
	}

	kept := fields[:0]
	found := false
	for _, f := range fields {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		s.logger.Debug("field delete on unknown id", zap.String("id", id))
		return nil
	}

	if err := s.repo.Replace(ctx, kept); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist custom fields")
	}
	return nil
}
