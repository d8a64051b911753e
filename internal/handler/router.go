package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-admin-api/internal/middleware"
	"github.com/noah-isme/roster-admin-api/internal/models"
	"github.com/noah-isme/roster-admin-api/internal/service"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Auth      *AuthHandler
	Students  *StudentHandler
	Fields    *FieldHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// RouterOptions toggles optional route groups.
type RouterOptions struct {
	DashboardEnabled bool
	ExportEnabled    bool
}

// RegisterRoutes mounts the API under the given prefix. Mutation routes
// carry the admin RBAC gate; record reads allow a student through to
// their own record via the SELF rule.
func RegisterRoutes(r *gin.Engine, prefix string, auth *service.AuthService, h Handlers, opts RouterOptions) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(auth))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	anyRole := middleware.RequireRoles(models.RoleAdmin, models.RoleStudent)

	students := authed.Group("/students")
	students.GET("", anyRole, h.Students.List)
	if opts.ExportEnabled {
		students.GET("/export", adminOnly, h.Export.Export)
	}
	students.GET("/:id", middleware.RBAC(string(models.RoleAdmin), middleware.AllowSelf), h.Students.Get)
	students.POST("", adminOnly, h.Students.Create)
	students.PATCH("/:id", adminOnly, h.Students.Update)
	students.DELETE("/:id", adminOnly, h.Students.Delete)

	fields := authed.Group("/fields")
	fields.GET("", anyRole, h.Fields.List)
	fields.POST("", adminOnly, h.Fields.Create)
	fields.PATCH("/:id", adminOnly, h.Fields.Update)
	fields.DELETE("/:id", adminOnly, h.Fields.Delete)

	if opts.DashboardEnabled {
		authed.GET("/dashboard/summary", anyRole, h.Dashboard.Summary)
	}
}
