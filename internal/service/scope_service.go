package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/roster-admin-api/internal/models"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
)

type recordLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

// ScopeService is the access-scoped query layer: it composes the session
// identity with the record store to produce the record subset the actor
// may see. The stores themselves stay policy-free; write gating happens
// at the route layer using CanMutate.
type ScopeService struct {
	students recordLister
	logger   *zap.Logger
}

// NewScopeService constructs the scope service.
func NewScopeService(students recordLister, logger *zap.Logger) *ScopeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScopeService{students: students, logger: logger}
}

// VisibleRecords returns the roster subset visible to the identity:
// admins see everything in insertion order, students see only the record
// whose id matches their own, and an absent identity sees nothing.
func (s *ScopeService) VisibleRecords(ctx context.Context, identity *models.AuthUser) ([]models.Student, error) {
	if identity == nil {
		return nil, nil
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	if identity.Role == models.RoleAdmin {
		return students, nil
	}

	var own []models.Student
	for i := range students {
		if students[i].ID == identity.ID {
			own = append(own, students[i])
		}
	}
	return own, nil
}

// CanMutate reports whether the identity may create, update or delete
// records and field definitions. Only admins mutate.
func (s *ScopeService) CanMutate(identity *models.AuthUser) bool {
	return identity != nil && identity.Role == models.RoleAdmin
}

// CanView reports whether the identity may read the record with the
// given id: admins read everything, students only themselves.
func (s *ScopeService) CanView(identity *models.AuthUser, recordID string) bool {
	if identity == nil {
		return false
	}
	if identity.Role == models.RoleAdmin {
		return true
	}
	return identity.ID == recordID
}
