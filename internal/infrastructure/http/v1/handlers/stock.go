package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/stocklevel"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// StockLevelHandler handles HTTP requests for stock levels.
type StockLevelHandler struct {
	*BaseHandler
	service *stocklevel.Service
}

// NewStockLevelHandler creates a new stock level handler.
func NewStockLevelHandler(base *BaseHandler, service *stocklevel.Service) *StockLevelHandler {
	return &StockLevelHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /stock-levels
func (h *StockLevelHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.StockLevelListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	levels, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockLevels(levels))
}

// Get handles GET /stock-levels/:id
func (h *StockLevelHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	levelID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid stock level id"))
		return
	}

	level, err := h.service.Get(ctx, levelID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockLevel(level))
}

// GetByPair handles GET /stock-levels/by-pair
func (h *StockLevelHandler) GetByPair(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Query("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id"))
		return
	}
	warehouseID, err := id.Parse(c.Query("warehouseId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouse id"))
		return
	}

	level, err := h.service.GetByPair(ctx, productID, warehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockLevel(level))
}

// Create handles POST /stock-levels
func (h *StockLevelHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStockLevelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	seed, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	level, err := h.service.Create(ctx, seed.ProductID, seed.WarehouseID, seed.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStockLevel(level))
}

// Update handles PUT /stock-levels/:id
func (h *StockLevelHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	levelID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid stock level id"))
		return
	}

	var req dto.UpdateStockLevelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	level, err := h.service.Update(ctx, levelID, req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockLevel(level))
}

// Delete handles DELETE /stock-levels/:id
func (h *StockLevelHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	levelID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid stock level id"))
		return
	}

	if err := h.service.Delete(ctx, levelID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
