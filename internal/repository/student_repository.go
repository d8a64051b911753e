package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/roster-admin-api/internal/models"
	"github.com/noah-isme/roster-admin-api/pkg/kvstore"
)

// StudentRepository persists the student roster as one ordered collection.
// Every mutation replaces the whole collection in a single write, so the
// roster is never observable in a partially written state.
type StudentRepository struct {
	store kvstore.Store
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(store kvstore.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// List returns all records in insertion order. Absent reads as empty.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.store.Get(ctx, KeyStudents, &students); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load students: %w", err)
	}
	return students, nil
}

// Replace writes the full roster.
func (r *StudentRepository) Replace(ctx context.Context, students []models.Student) error {
	if err := r.store.Set(ctx, KeyStudents, students); err != nil {
		return fmt.Errorf("persist students: %w", err)
	}
	return nil
}
