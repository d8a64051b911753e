package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-admin-api/internal/models"
)

func TestFieldHandlerList(t *testing.T) {
	stack := newTestStack(t)
	handler := NewFieldHandler(stack.fields)

	c, rec := testContext(t, http.MethodGet, "/fields", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.CustomField `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 4)
}

func TestFieldHandlerCreate(t *testing.T) {
	stack := newTestStack(t)
	handler := NewFieldHandler(stack.fields)

	c, rec := testContext(t, http.MethodPost, "/fields", map[string]interface{}{
		"label": "Blood Group",
		"type":  "dropdown",
		"options": []string{
			"A+", "B+", "O+",
		},
	})

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data models.CustomField `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "blood_group", envelope.Data.Key)
	assert.Equal(t, []string{"A+", "B+", "O+"}, envelope.Data.Options)
}

func TestFieldHandlerCreateUnknownType(t *testing.T) {
	stack := newTestStack(t)
	handler := NewFieldHandler(stack.fields)

	c, rec := testContext(t, http.MethodPost, "/fields", map[string]interface{}{
		"label": "Rating",
		"type":  "rating",
	})

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFieldHandlerUpdateUnknownIDReturnsNoContent(t *testing.T) {
	stack := newTestStack(t)
	handler := NewFieldHandler(stack.fields)

	c, rec := testContext(t, http.MethodPatch, "/fields/cf-404", map[string]interface{}{"label": "Renamed"})
	c.Params = gin.Params{{Key: "id", Value: "cf-404"}}

	handler.Update(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFieldHandlerDelete(t *testing.T) {
	stack := newTestStack(t)
	handler := NewFieldHandler(stack.fields)

	c, rec := testContext(t, http.MethodDelete, "/fields/cf-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "cf-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	fields, err := stack.fields.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, fields, 3)
}
