// Package stocklevel provides the current on-hand quantity per
// (product, warehouse) pair. One row per pair; the ledger engine is the
// only writer during movement operations, a small direct-management
// surface exists for seeding and corrections.
package stocklevel

import (
	"context"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

// Level is the materialized on-hand quantity for one (product, warehouse) pair.
// Invariant: Quantity equals the sum of all inbound movement quantities minus
// the sum of all outbound movement quantities for the pair, and is never negative.
type Level struct {
	entity.BaseEntity

	ProductID   id.ID `db:"product_id" json:"productId"`
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// Quantity is the current on-hand amount, always >= 0
	Quantity int64 `db:"quantity" json:"quantity"`
}

// NewLevel creates a new Level. Negative quantities clamp to zero.
func NewLevel(productID, warehouseID id.ID, quantity int64) *Level {
	if quantity < 0 {
		quantity = 0
	}
	return &Level{
		BaseEntity:  entity.NewBaseEntity(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
	}
}

// Validate implements entity.Validatable interface.
func (l *Level) Validate(ctx context.Context) error {
	if id.IsNil(l.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if id.IsNil(l.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}
	if l.Quantity < 0 {
		return apperror.NewValidation("quantity must not be negative").
			WithDetail("field", "quantity").
			WithDetail("value", l.Quantity)
	}
	return nil
}
