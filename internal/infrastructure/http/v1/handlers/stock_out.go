package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// StockOutHandler handles HTTP requests for outgoing stock movements.
type StockOutHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewStockOutHandler creates a new stock-out handler.
func NewStockOutHandler(base *BaseHandler, service *ledger.Service) *StockOutHandler {
	return &StockOutHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /stock-out
func (h *StockOutHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.MovementListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	movements, err := h.service.ListStockOut(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockOuts(movements))
}

// Get handles GET /stock-out/:id
func (h *StockOutHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid movement id"))
		return
	}

	movement, err := h.service.GetStockOut(ctx, movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockOut(movement))
}

// Create handles POST /stock-out
func (h *StockOutHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStockOutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movement, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.CreateStockOut(ctx, movement)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStockOut(created))
}

// Update handles PUT /stock-out/:id
func (h *StockOutHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid movement id"))
		return
	}

	var req dto.UpdateStockOutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movement, err := req.ToEntity(movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.UpdateStockOut(ctx, movement)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockOut(updated))
}

// Delete handles DELETE /stock-out/:id
func (h *StockOutHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid movement id"))
		return
	}

	if err := h.service.DeleteStockOut(ctx, movementID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
