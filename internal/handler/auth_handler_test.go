package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-admin-api/internal/middleware"
	"github.com/noah-isme/roster-admin-api/internal/models"
)

func TestAuthHandlerLoginSuccess(t *testing.T) {
	stack := newTestStack(t)
	handler := NewAuthHandler(stack.auth)

	c, rec := testContext(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@school.com",
		"password": "admin123",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, models.RoleAdmin, envelope.Data.User.Role)
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	stack := newTestStack(t)
	handler := NewAuthHandler(stack.auth)

	c, rec := testContext(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@school.com",
		"password": "nope",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
}

func TestAuthHandlerLoginRejectsMissingPassword(t *testing.T) {
	stack := newTestStack(t)
	handler := NewAuthHandler(stack.auth)

	c, rec := testContext(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "admin@school.com",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerLogout(t *testing.T) {
	stack := newTestStack(t)
	handler := NewAuthHandler(stack.auth)

	c, rec := testContext(t, http.MethodPost, "/auth/logout", nil)

	handler.Logout(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	stack := newTestStack(t)
	handler := NewAuthHandler(stack.auth)

	c, rec := testContext(t, http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, asClaims("student-1", models.RoleStudent))

	handler.Me(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data models.AuthUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "student-1", envelope.Data.ID)
}

func TestAuthHandlerMeWithoutIdentity(t *testing.T) {
	stack := newTestStack(t)
	handler := NewAuthHandler(stack.auth)

	c, rec := testContext(t, http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
