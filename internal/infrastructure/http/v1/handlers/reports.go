package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetSummary handles GET /reports/summary
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.service.GetSummary(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// GetLowStock handles GET /reports/low-stock
func (h *ReportsHandler) GetLowStock(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.LowStockQuery
	if !h.BindQuery(c, &query) {
		return
	}

	items, err := h.service.GetLowStock(ctx, query.Limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}

// GetInventory handles GET /reports/inventory
func (h *ReportsHandler) GetInventory(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.InventoryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetInventory(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// GetMovementHistory handles GET /reports/movements
func (h *ReportsHandler) GetMovementHistory(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.MovementHistoryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.service.GetMovementHistory(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": items})
}
