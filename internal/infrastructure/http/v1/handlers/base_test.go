package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/http/v1/dto"
)

func newRecordedContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// Create endpoints respond 201 with the full created record, not a bare ID.
func TestCreated_WritesRecordBody(t *testing.T) {
	c, w := newRecordedContext(t)

	movement := &ledger.StockIn{
		BaseEntity:    entity.NewBaseEntity(),
		Date:          time.Now().UTC(),
		ProductID:     id.New(),
		WarehouseID:   id.New(),
		Quantity:      15,
		ReferenceCode: "REF-001",
	}
	h := NewBaseHandler()
	h.Created(c, dto.FromStockIn(movement))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), movement.ID.String())
	assert.Contains(t, w.Body.String(), `"quantity":15`)
	assert.Contains(t, w.Body.String(), `"referenceCode":"REF-001"`)
}

func TestOK_WritesBody(t *testing.T) {
	c, w := newRecordedContext(t)

	h := NewBaseHandler()
	h.OK(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hello": "world"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	c, w := newRecordedContext(t)

	h := NewBaseHandler()
	h.NoContent(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
