package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-admin-api/internal/service"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
	"github.com/noah-isme/roster-admin-api/pkg/response"
)

// StudentHandler exposes roster endpoints. Reads run through the scope
// service so each caller only sees what their role allows; mutation
// routes are gated by the RBAC middleware before they reach here.
type StudentHandler struct {
	students *service.StudentService
	scope    *service.ScopeService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, scope *service.ScopeService) *StudentHandler {
	return &StudentHandler{students: students, scope: scope}
}

// List godoc
// @Summary List visible students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	identity := identityFromContext(c)
	students, err := h.scope.VisibleRecords(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	identity := identityFromContext(c)
	id := c.Param("id")
	if !h.scope.CanView(identity, id) {
		response.Error(c, appErrors.ErrForbidden)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Partially update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.StudentPatch true "Partial payload"
// @Success 200 {object} response.Envelope
// @Success 204 "Unknown id, nothing changed"
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	var patch service.StudentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	if student == nil {
		response.NoContent(c)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
