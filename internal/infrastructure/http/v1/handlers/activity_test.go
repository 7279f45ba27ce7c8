package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stockyard/internal/core/id"
	"stockyard/internal/infrastructure/http/v1/middleware"
)

func newActivityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	handler := NewActivityHandler(NewBaseHandler(), nil)
	r.GET("/activity/:entityType/:id", handler.GetHistory)
	return r
}

func TestActivityHistory_UnknownEntityType(t *testing.T) {
	r := newActivityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity/products/"+id.New().String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "unknown entity type")
}

func TestActivityHistory_InvalidID(t *testing.T) {
	r := newActivityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/activity/stock_in/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "invalid entity id")
}
