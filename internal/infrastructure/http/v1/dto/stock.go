package dto

import (
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/stocklevel"
)

// --- Request DTOs ---

// CreateStockLevelRequest seeds a stock level row directly.
type CreateStockLevelRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	WarehouseID string `json:"warehouseId" binding:"required"`
	Quantity    int64  `json:"quantity"`
}

// ToEntity converts DTO to domain entity. Negative quantities clamp to zero.
func (r *CreateStockLevelRequest) ToEntity() (*stocklevel.Level, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").WithDetail("productId", r.ProductID)
	}
	warehouseID, err := id.Parse(r.WarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid warehouse id").WithDetail("warehouseId", r.WarehouseID)
	}
	return stocklevel.NewLevel(productID, warehouseID, r.Quantity), nil
}

// UpdateStockLevelRequest overwrites a level's quantity.
type UpdateStockLevelRequest struct {
	Quantity int64 `json:"quantity"`
}

// StockLevelListQuery narrows level listings.
type StockLevelListQuery struct {
	ProductID   string `form:"productId"`
	WarehouseID string `form:"warehouseId"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (q *StockLevelListQuery) ToFilter() (stocklevel.Filter, error) {
	f := stocklevel.Filter{Limit: q.Limit, Offset: q.Offset}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if q.ProductID != "" {
		productID, err := id.Parse(q.ProductID)
		if err != nil {
			return f, apperror.NewValidation("invalid product id").WithDetail("productId", q.ProductID)
		}
		f.ProductID = &productID
	}
	if q.WarehouseID != "" {
		warehouseID, err := id.Parse(q.WarehouseID)
		if err != nil {
			return f, apperror.NewValidation("invalid warehouse id").WithDetail("warehouseId", q.WarehouseID)
		}
		f.WarehouseID = &warehouseID
	}
	return f, nil
}

// --- Response DTOs ---

// StockLevelResponse is the response body for a stock level.
type StockLevelResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	WarehouseID string    `json:"warehouseId"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromStockLevel creates response DTO from domain entity.
func FromStockLevel(l *stocklevel.Level) *StockLevelResponse {
	return &StockLevelResponse{
		ID:          l.ID.String(),
		ProductID:   l.ProductID.String(),
		WarehouseID: l.WarehouseID.String(),
		Quantity:    l.Quantity,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// FromStockLevels converts a slice of entities.
func FromStockLevels(items []*stocklevel.Level) []*StockLevelResponse {
	res := make([]*StockLevelResponse, 0, len(items))
	for _, l := range items {
		res = append(res, FromStockLevel(l))
	}
	return res
}
