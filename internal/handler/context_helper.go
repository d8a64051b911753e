package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-admin-api/internal/middleware"
	"github.com/noah-isme/roster-admin-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func identityFromContext(c *gin.Context) *models.AuthUser {
	claims := claimsFromContext(c)
	if claims == nil {
		return nil
	}
	identity := claims.Identity()
	return &identity
}
