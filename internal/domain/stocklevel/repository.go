package stocklevel

import (
	"context"

	"stockyard/internal/core/id"
)

// Repository defines persistence for stock levels.
//
// Adjust and Create are the only mutation paths used by the ledger engine;
// both must serialize concurrent callers on the same (product, warehouse)
// pair via row-level locking so the non-negativity check is never computed
// against stale state.
type Repository interface {
	// GetByID retrieves a level by its surrogate ID.
	GetByID(ctx context.Context, levelID id.ID) (*Level, error)

	// GetByPair retrieves the level for a (product, warehouse) pair.
	GetByPair(ctx context.Context, productID, warehouseID id.ID) (*Level, error)

	// List retrieves levels with optional filtering.
	List(ctx context.Context, filter Filter) ([]*Level, error)

	// Create inserts a new level row.
	// Fails with DuplicatePair if a row for the pair already exists.
	Create(ctx context.Context, level *Level) error

	// Adjust changes the pair's quantity by delta and returns the new value.
	// A positive delta creates the row implicitly when the pair is new.
	// A negative delta locks the row and fails with InsufficientStock when
	// the result would go below zero. Must run inside a transaction.
	Adjust(ctx context.Context, productID, warehouseID id.ID, delta int64) (int64, error)

	// SetQuantity overwrites the quantity of an existing level row.
	SetQuantity(ctx context.Context, levelID id.ID, quantity int64) error

	// Delete removes a level row.
	Delete(ctx context.Context, levelID id.ID) error

	// HasMovements reports whether any inbound or outbound movement
	// exists for the pair.
	HasMovements(ctx context.Context, productID, warehouseID id.ID) (bool, error)
}

// Filter narrows List results.
type Filter struct {
	ProductID   *id.ID
	WarehouseID *id.ID
	Limit       int
	Offset      int
}
