package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/roster-admin-api/internal/service"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
	"github.com/noah-isme/roster-admin-api/pkg/response"
)

// FieldHandler exposes schema registry endpoints. Listing is open to any
// authenticated caller because forms need the field set to render;
// mutations are admin-only via the RBAC middleware.
type FieldHandler struct {
	fields *service.FieldService
}

// NewFieldHandler constructs FieldHandler.
func NewFieldHandler(fields *service.FieldService) *FieldHandler {
	return &FieldHandler{fields: fields}
}

// List godoc
// @Summary List custom field definitions
// @Tags Fields
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fields [get]
func (h *FieldHandler) List(c *gin.Context) {
	fields, err := h.fields.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fields)
}

// Create godoc
// @Summary Define a custom field
// @Tags Fields
// @Accept json
// @Produce json
// @Param payload body service.CreateFieldRequest true "Field payload"
// @Success 201 {object} response.Envelope
// @Router /fields [post]
func (h *FieldHandler) Create(c *gin.Context) {
	var req service.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	field, err := h.fields.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, field)
}

// Update godoc
// @Summary Partially update a custom field
// @Tags Fields
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param payload body service.UpdateFieldRequest true "Partial payload"
// @Success 200 {object} response.Envelope
// @Success 204 "Unknown id, nothing changed"
// @Router /fields/{id} [patch]
func (h *FieldHandler) Update(c *gin.Context) {
	var req service.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	field, err := h.fields.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if field == nil {
		response.NoContent(c)
		return
	}
	response.JSON(c, http.StatusOK, field)
}

// Delete godoc
// @Summary Delete a custom field
// @Tags Fields
// @Produce json
// @Param id path string true "Field ID"
// @Success 204
// @Router /fields/{id} [delete]
func (h *FieldHandler) Delete(c *gin.Context) {
	if err := h.fields.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
