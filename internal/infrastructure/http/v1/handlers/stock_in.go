package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// StockInHandler handles HTTP requests for incoming stock movements.
type StockInHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewStockInHandler creates a new stock-in handler.
func NewStockInHandler(base *BaseHandler, service *ledger.Service) *StockInHandler {
	return &StockInHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /stock-in
func (h *StockInHandler) List(c *gin.Context) {
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

	movements, err := h.service.ListStockIn(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockIns(movements))
}

// Get handles GET /stock-in/:id
func (h *StockInHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid movement id"))
		return
	}

	movement, err := h.service.GetStockIn(ctx, movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockIn(movement))
}

// Create handles POST /stock-in
func (h *StockInHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStockInRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movement, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.CreateStockIn(ctx, movement)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStockIn(created))
}

// Update handles PUT /stock-in/:id
func (h *StockInHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid movement id"))
		return
	}

	var req dto.UpdateStockInRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movement, err := req.ToEntity(movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.UpdateStockIn(ctx, movement)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockIn(updated))
}

// Delete handles DELETE /stock-in/:id
func (h *StockInHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid movement id"))
		return
	}

	if err := h.service.DeleteStockIn(ctx, movementID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
