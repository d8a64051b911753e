package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-admin-api/internal/models"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
)

type fakeUserRepo struct {
	users []models.User
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	return r.users, nil
}

type fakeSessionRepo struct {
	identity *models.AuthUser
}

func (r *fakeSessionRepo) Get(ctx context.Context) (*models.AuthUser, error) {
	return r.identity, nil
}

func (r *fakeSessionRepo) Set(ctx context.Context, identity models.AuthUser) error {
	r.identity = &identity
	return nil
}

func (r *fakeSessionRepo) Clear(ctx context.Context) error {
	r.identity = nil
	return nil
}

func newAuthService(users []models.User, session *fakeSessionRepo) *AuthService {
	return NewAuthService(&fakeUserRepo{users: users}, session, nil, nil, AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "roster-admin-api",
	})
}

func seedCredentials() []models.User {
	return []models.User{
		{ID: "admin-1", Role: models.RoleAdmin, Email: "admin@school.com", Password: "admin123", Name: "Super Admin"},
		{ID: "student-1", Role: models.RoleStudent, Email: "john@student.com", Password: "john123", Name: "John Doe"},
	}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	session := &fakeSessionRepo{}
	svc := newAuthService(seedCredentials(), session)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@school.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin-1", resp.User.ID)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	require.NotNil(t, session.identity)
	assert.Equal(t, "admin-1", session.identity.ID)
}

func TestAuthServiceLoginWrongPasswordLeavesSessionUntouched(t *testing.T) {
	session := &fakeSessionRepo{identity: &models.AuthUser{ID: "student-1", Role: models.RoleStudent}}
	svc := newAuthService(seedCredentials(), session)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@school.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	// the previous session survives a failed attempt
	require.NotNil(t, session.identity)
	assert.Equal(t, "student-1", session.identity.ID)
}

func TestAuthServiceLoginOverwritesPreviousSession(t *testing.T) {
	session := &fakeSessionRepo{identity: &models.AuthUser{ID: "student-1", Role: models.RoleStudent}}
	svc := newAuthService(seedCredentials(), session)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "admin@school.com",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin-1", session.identity.ID)
}

func TestAuthServiceLogoutClearsSession(t *testing.T) {
	session := &fakeSessionRepo{identity: &models.AuthUser{ID: "admin-1", Role: models.RoleAdmin}}
	svc := newAuthService(seedCredentials(), session)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, session.identity)

	// logging out twice is fine
	require.NoError(t, svc.Logout(context.Background()))
}

func TestAuthServiceCurrentRole(t *testing.T) {
	session := &fakeSessionRepo{}
	svc := newAuthService(seedCredentials(), session)

	role, err := svc.CurrentRole(context.Background())
	require.NoError(t, err)
	assert.Empty(t, role)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email: "john@student.com", Password: "john123",
	})
	require.NoError(t, err)

	role, err = svc.CurrentRole(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, role)
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	session := &fakeSessionRepo{}
	svc := newAuthService(seedCredentials(), session)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "admin@school.com", Password: "admin123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.ValidateToken(resp.AccessToken + "tampered")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
