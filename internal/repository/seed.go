package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/roster-admin-api/internal/models"
	"github.com/noah-isme/roster-admin-api/pkg/kvstore"
)

// SeedUsers is the provisioned credential set for first run.
func SeedUsers() []models.User {
	return []models.User{
		{ID: "admin-1", Role: models.RoleAdmin, Email: "admin@school.com", Password: "admin123", Name: "Super Admin"},
		{ID: "student-1", Role: models.RoleStudent, Email: "john@student.com", Password: "john123", Name: "John Doe"},
		{ID: "student-2", Role: models.RoleStudent, Email: "emma@student.com", Password: "emma123", Name: "Emma Watson"},
	}
}

// SeedCustomFields is the initial schema for first run.
func SeedCustomFields() []models.CustomField {
	return []models.CustomField{
		{ID: "cf-1", Label: "Gender", Key: "gender", Type: models.FieldDropdown, Required: true, Options: []string{"Male", "Female", "Other"}},
		{ID: "cf-2", Label: "Date of Birth", Key: "dob", Type: models.FieldDate, Required: true},
		{ID: "cf-3", Label: "Is Active", Key: "isActive", Type: models.FieldCheckbox, Required: false},
		{ID: "cf-4", Label: "Profile Bio", Key: "bio", Type: models.FieldTextarea, Required: false},
	}
}

// SeedStudents is the initial roster for first run. Record ids line up
// with the student credentials so self-service scoping works out of the
// box.
func SeedStudents() []models.Student {
	return []models.Student{
		{
			ID: "student-1", Name: "John Doe", Email: "john@student.com",
			Phone: "+91-9876543210", Status: models.StatusActive, CreatedAt: "2024-12-10",
			Custom: map[string]models.FieldValue{
				"gender":   models.StringValue("Male"),
				"dob":      models.StringValue("2002-05-21"),
				"isActive": models.BoolValue(true),
				"bio":      models.StringValue("Computer science student with interest in frontend."),
			},
		},
		{
			ID: "student-2", Name: "Emma Watson", Email: "emma@student.com",
			Phone: "+91-9123456780", Status: models.StatusInactive, CreatedAt: "2024-12-15",
			Custom: map[string]models.FieldValue{
				"gender":   models.StringValue("Female"),
				"dob":      models.StringValue("2001-09-14"),
				"isActive": models.BoolValue(false),
				"bio":      models.StringValue("Design-focused learner exploring UI/UX."),
			},
		},
	}
}

// Bootstrap initializes any absent collection with its seed set. Existing
// collections are left untouched, so reseeding never clobbers user data.
func Bootstrap(ctx context.Context, store kvstore.Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	seeded := 0
	collections := []struct {
		key   string
		value interface{}
	}{
		{KeyUsers, SeedUsers()},
		{KeyStudents, SeedStudents()},
		{KeyCustomFields, SeedCustomFields()},
	}

	for _, col := range collections {
		var probe interface{}
		err := store.Get(ctx, col.key, &probe)
		if err == nil {
			continue
		}
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			return fmt.Errorf("probe collection %s: %w", col.key, err)
		}
		if err := store.Set(ctx, col.key, col.value); err != nil {
			return fmt.Errorf("seed collection %s: %w", col.key, err)
		}
		seeded++
		logger.Info("seeded collection", zap.String("key", col.key))
	}

	if seeded == 0 {
		logger.Debug("all collections present, nothing to seed")
	}
	return nil
}
