package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// TransferHandler handles HTTP requests for warehouse-to-warehouse transfers.
type TransferHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(base *BaseHandler, service *ledger.Service) *TransferHandler {
	return &TransferHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /transfers
func (h *TransferHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.TransferListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	transfers, err := h.service.ListTransfers(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTransfers(transfers))
}

// Get handles GET /transfers/:id
func (h *TransferHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	transferID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid transfer id"))
		return
	}

	transfer, err := h.service.GetTransfer(ctx, transferID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTransfer(transfer))
}

// Create handles POST /transfers
func (h *TransferHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTransferRequest
	if !h.BindJSON(c, &req) {
		return
	}

	transfer, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.CreateTransfer(ctx, transfer)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromTransfer(created))
}

// Update handles PUT /transfers/:id
func (h *TransferHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	transferID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid transfer id"))
		return
	}

	var req dto.UpdateTransferRequest
	if !h.BindJSON(c, &req) {
		return
	}

	transfer, err := req.ToEntity(transferID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.UpdateTransfer(ctx, transfer)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTransfer(updated))
}

// Delete handles DELETE /transfers/:id
func (h *TransferHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	transferID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid transfer id"))
		return
	}

	if err := h.service.DeleteTransfer(ctx, transferID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
