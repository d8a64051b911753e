package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-admin-api/internal/models"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
)

type fakeStudentRepo struct {
	students []models.Student
}

func (r *fakeStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	return r.students, nil
}

func (r *fakeStudentRepo) Replace(ctx context.Context, students []models.Student) error {
	r.students = students
	return nil
}

func newStudentService(students []models.Student, fields []models.CustomField) (*StudentService, *fakeStudentRepo) {
	repo := &fakeStudentRepo{students: students}
	svc := NewStudentService(repo, &fakeFieldRepo{fields: fields}, nil, nil)
	return svc, repo
}

func TestStudentServiceCreateAssignsIDAndDate(t *testing.T) {
	svc, repo := newStudentService(nil, nil)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:   "New Kid",
		Email:  "kid@student.com",
		Status: models.StatusPending,
	})
	require.NoError(t, err)
	assert.Contains(t, student.ID, "student-")
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), student.CreatedAt)
	require.Len(t, repo.students, 1)
	assert.Equal(t, student.ID, repo.students[0].ID)
}

func TestStudentServiceCreateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newStudentService(nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:   "X",
		Email:  "x@student.com",
		Status: "suspended",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceCreateNormalizesCheckbox(t *testing.T) {
	fields := []models.CustomField{
		{ID: "cf-3", Label: "Is Active", Key: "isActive", Type: models.FieldCheckbox},
		{ID: "cf-2", Label: "Date of Birth", Key: "dob", Type: models.FieldDate},
	}
	svc, _ := newStudentService(nil, fields)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:   "New Kid",
		Email:  "kid@student.com",
		Status: models.StatusActive,
		Custom: map[string]models.FieldValue{
			"isActive": models.StringValue("true"),
			"dob":      models.StringValue("2003-01-01"),
			"hobby":    models.StringValue("chess"), // no definition, passes through
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.BoolValue(true), student.Custom["isActive"])
	assert.Equal(t, models.StringValue("2003-01-01"), student.Custom["dob"])
	assert.Equal(t, models.StringValue("chess"), student.Custom["hobby"])
}

func TestStudentServiceUpdateMergesOnlyNamedAttributes(t *testing.T) {
	seed := []models.Student{{
		ID: "student-1", Name: "John Doe", Email: "john@student.com",
		Status: models.StatusActive, CreatedAt: "2024-12-10",
		Custom: map[string]models.FieldValue{"gender": models.StringValue("Male")},
	}}
	svc, repo := newStudentService(seed, nil)

	status := models.StatusInactive
	updated, err := svc.Update(context.Background(), "student-1", StudentPatch{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusInactive, updated.Status)
	assert.Equal(t, "John Doe", updated.Name)
	assert.Equal(t, "2024-12-10", updated.CreatedAt)
	assert.Equal(t, models.StringValue("Male"), updated.Custom["gender"])
	assert.Equal(t, models.StatusInactive, repo.students[0].Status)
}

func TestStudentServiceUpdateUnknownIDIsNoOp(t *testing.T) {
	seed := []models.Student{{ID: "student-1", Name: "John Doe", Status: models.StatusActive}}
	svc, repo := newStudentService(seed, nil)

	name := "Ghost"
	updated, err := svc.Update(context.Background(), "student-404", StudentPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated)
	require.Len(t, repo.students, 1)
	assert.Equal(t, "John Doe", repo.students[0].Name)
}

func TestStudentServicePatchIgnoresIDAndCreatedAt(t *testing.T) {
	var patch StudentPatch
	raw := []byte(`{"id":"student-evil","createdAt":"1999-01-01","name":"Renamed","gender":"Other"}`)
	require.NoError(t, json.Unmarshal(raw, &patch))

	require.NotNil(t, patch.Name)
	assert.Equal(t, "Renamed", *patch.Name)
	_, hasID := patch.Custom["id"]
	_, hasCreated := patch.Custom["createdAt"]
	assert.False(t, hasID)
	assert.False(t, hasCreated)
	assert.Equal(t, models.StringValue("Other"), patch.Custom["gender"])
}

func TestStudentServiceDelete(t *testing.T) {
	seed := []models.Student{
		{ID: "student-1", Name: "John Doe"},
		{ID: "student-2", Name: "Emma Watson"},
	}
	svc, repo := newStudentService(seed, nil)

	require.NoError(t, svc.Delete(context.Background(), "student-1"))
	require.Len(t, repo.students, 1)
	assert.Equal(t, "student-2", repo.students[0].ID)

	require.NoError(t, svc.Delete(context.Background(), "student-404"))
	assert.Len(t, repo.students, 1)
}

func TestStudentServiceGet(t *testing.T) {
	seed := []models.Student{{ID: "student-1", Name: "John Doe"}}
	svc, _ := newStudentService(seed, nil)

	student, err := svc.Get(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", student.Name)

	_, err = svc.Get(context.Background(), "student-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
