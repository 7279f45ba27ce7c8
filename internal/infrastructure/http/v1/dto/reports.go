package dto

import (
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/reports"
)

// Report responses reuse the domain types directly: they already carry
// json tags and contain no internal fields.

// --- Low Stock ---

// LowStockQuery bounds the low stock listing.
type LowStockQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// --- Inventory ---

// InventoryQuery narrows the inventory report.
type InventoryQuery struct {
	ProductID   string `form:"productId"`
	WarehouseID string `form:"warehouseId"`
	CategoryID  string `form:"categoryId"`
	Search      string `form:"search"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (q *InventoryQuery) ToFilter() (reports.InventoryFilter, error) {
	f := reports.InventoryFilter{
		Search: q.Search,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	var err error
	if f.ProductID, err = parseOptionalID(q.ProductID, "productId"); err != nil {
		return f, err
	}
	if f.WarehouseID, err = parseOptionalID(q.WarehouseID, "warehouseId"); err != nil {
		return f, err
	}
	if f.CategoryID, err = parseOptionalID(q.CategoryID, "categoryId"); err != nil {
		return f, err
	}
	return f, nil
}

// --- Movement History ---

// MovementHistoryQuery narrows the recent-movement listing.
type MovementHistoryQuery struct {
	ProductID   string     `form:"productId"`
	WarehouseID string     `form:"warehouseId"`
	FromDate    *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate      *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit       int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int        `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (q *MovementHistoryQuery) ToFilter() (reports.MovementHistoryFilter, error) {
	f := reports.MovementHistoryFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	var err error
	if f.ProductID, err = parseOptionalID(q.ProductID, "productId"); err != nil {
		return f, err
	}
	if f.WarehouseID, err = parseOptionalID(q.WarehouseID, "warehouseId"); err != nil {
		return f, err
	}
	return f, nil
}

func parseOptionalID(value, field string) (*id.ID, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := id.Parse(value)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").WithDetail(field, value)
	}
	return &parsed, nil
}
