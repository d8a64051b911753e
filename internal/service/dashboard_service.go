package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/roster-admin-api/internal/models"
)

type visibleRecordsProvider interface {
	VisibleRecords(ctx context.Context, identity *models.AuthUser) ([]models.Student, error)
}

// DashboardSummary mirrors the stat cards on the dashboard landing page.
type DashboardSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Pending  int `json:"pending"`
}

// DashboardService aggregates status counts over the caller's visible
// scope: admins get roster-wide numbers, students their own record only.
type DashboardService struct {
	scope  visibleRecordsProvider
	logger *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(scope visibleRecordsProvider, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{scope: scope, logger: logger}
}

// Summary counts visible records by status.
func (s *DashboardService) Summary(ctx context.Context, identity *models.AuthUser) (*DashboardSummary, error) {
	students, err := s.scope.VisibleRecords(ctx, identity)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{Total: len(students)}
	for _, st := range students {
		switch st.Status {
		case models.StatusActive:
			summary.Active++
		case models.StatusInactive:
			summary.Inactive++
		case models.StatusPending:
			summary.Pending++
		}
	}
	return summary, nil
}
