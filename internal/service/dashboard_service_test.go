package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-admin-api/internal/models"
)

func TestDashboardSummaryCountsByStatus(t *testing.T) {
	roster := []models.Student{
		{ID: "student-1", Status: models.StatusActive},
		{ID: "student-2", Status: models.StatusActive},
		{ID: "student-3", Status: models.StatusInactive},
		{ID: "student-4", Status: models.StatusPending},
	}
	scope := NewScopeService(&fakeStudentRepo{students: roster}, nil)
	svc := NewDashboardService(scope, nil)

	summary, err := svc.Summary(context.Background(), &models.AuthUser{ID: "admin-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Active)
	assert.Equal(t, 1, summary.Inactive)
	assert.Equal(t, 1, summary.Pending)
}

func TestDashboardSummaryRespectsScope(t *testing.T) {
	roster := []models.Student{
		{ID: "student-1", Status: models.StatusActive},
		{ID: "student-2", Status: models.StatusInactive},
	}
	scope := NewScopeService(&fakeStudentRepo{students: roster}, nil)
	svc := NewDashboardService(scope, nil)

	summary, err := svc.Summary(context.Background(), &models.AuthUser{ID: "student-2", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 0, summary.Active)
	assert.Equal(t, 1, summary.Inactive)
}

func TestDashboardSummaryEmptyForNoIdentity(t *testing.T) {
	scope := NewScopeService(&fakeStudentRepo{students: scopeRoster()}, nil)
	svc := NewDashboardService(scope, nil)

	summary, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
}
