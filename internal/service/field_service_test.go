package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-admin-api/internal/models"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
)

type fakeFieldRepo struct {
	fields []models.CustomField
}

func (r *fakeFieldRepo) List(ctx context.Context) ([]models.CustomField, error) {
	return r.fields, nil
}

func (r *fakeFieldRepo) Replace(ctx context.Context, fields []models.CustomField) error {
	r.fields = fields
	return nil
}

func TestFieldServiceCreateDerivesKey(t *testing.T) {
	repo := &fakeFieldRepo{}
	svc := NewFieldService(repo, nil, nil)

	field, err := svc.Create(context.Background(), CreateFieldRequest{
		Label: "Is Active",
		Type:  models.FieldCheckbox,
	})
	require.NoError(t, err)
	assert.Equal(t, "is_active", field.Key)
	assert.NotEmpty(t, field.ID)
	require.Len(t, repo.fields, 1)
}

func TestFieldServiceCreateKeepsExplicitKey(t *testing.T) {
	repo := &fakeFieldRepo{}
	svc := NewFieldService(repo, nil, nil)

	field, err := svc.Create(context.Background(), CreateFieldRequest{
		Label: "Date of Birth",
		Key:   "dob",
		Type:  models.FieldDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "dob", field.Key)
}

func TestFieldServiceCreateOptionsOnlyForDropdown(t *testing.T) {
	repo := &fakeFieldRepo{}
	svc := NewFieldService(repo, nil, nil)

	field, err := svc.Create(context.Background(), CreateFieldRequest{
		Label:   "Bio",
		Type:    models.FieldTextarea,
		Options: []string{"should", "be", "dropped"},
	})
	require.NoError(t, err)
	assert.Nil(t, field.Options)

	dropdown, err := svc.Create(context.Background(), CreateFieldRequest{
		Label:   "Gender",
		Type:    models.FieldDropdown,
		Options: []string{"Male", "Female", "Other"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Male", "Female", "Other"}, dropdown.Options)
}

func TestFieldServiceCreateRejectsUnknownType(t *testing.T) {
	svc := NewFieldService(&fakeFieldRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateFieldRequest{Label: "X", Type: "rating"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFieldServiceUpdateClearsOptionsOnTypeChange(t *testing.T) {
	repo := &fakeFieldRepo{fields: []models.CustomField{
		{ID: "cf-1", Label: "Gender", Key: "gender", Type: models.FieldDropdown, Options: []string{"Male", "Female"}},
	}}
	svc := NewFieldService(repo, nil, nil)

	newType := models.FieldText
	field, err := svc.Update(context.Background(), "cf-1", UpdateFieldRequest{Type: &newType})
	require.NoError(t, err)
	require.NotNil(t, field)
	assert.Equal(t, models.FieldText, field.Type)
	assert.Nil(t, field.Options)
	assert.Nil(t, repo.fields[0].Options)
}

func TestFieldServiceUpdateUnknownIDIsNoOp(t *testing.T) {
	repo := &fakeFieldRepo{fields: []models.CustomField{
		{ID: "cf-1", Label: "Gender", Key: "gender", Type: models.FieldDropdown},
	}}
	svc := NewFieldService(repo, nil, nil)

	label := "Renamed"
	field, err := svc.Update(context.Background(), "cf-missing", UpdateFieldRequest{Label: &label})
	require.NoError(t, err)
	assert.Nil(t, field)
	assert.Equal(t, "Gender", repo.fields[0].Label)
}

func TestFieldServiceDelete(t *testing.T) {
	repo := &fakeFieldRepo{fields: []models.CustomField{
		{ID: "cf-1", Key: "gender"},
		{ID: "cf-2", Key: "dob"},
	}}
	svc := NewFieldService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "cf-1"))
	require.Len(t, repo.fields, 1)
	assert.Equal(t, "cf-2", repo.fields[0].ID)

	// unknown id is silent
	require.NoError(t, svc.Delete(context.Background(), "cf-none"))
	assert.Len(t, repo.fields, 1)
}
