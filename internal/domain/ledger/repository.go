package ledger

import (
	"context"
	"time"

	"stockyard/internal/core/id"
)

// MovementFilter narrows journal listings.
type MovementFilter struct {
	ProductID   *id.ID
	WarehouseID *id.ID
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}

// TransferFilter narrows transfer listings.
type TransferFilter struct {
	ProductID       *id.ID
	FromWarehouseID *id.ID
	ToWarehouseID   *id.ID
	Status          *TransferStatus
	Limit           int
	Offset          int
}

// StockInRepository defines persistence for the inbound journal.
// Create and Update map reference-code unique violations to
// DuplicateReference, which keeps the uniqueness guarantee authoritative
// even when two creates race.
type StockInRepository interface {
	Create(ctx context.Context, movement *StockIn) error
	GetByID(ctx context.Context, movementID id.ID) (*StockIn, error)
	Update(ctx context.Context, movement *StockIn) error
	Delete(ctx context.Context, movementID id.ID) error
	List(ctx context.Context, filter MovementFilter) ([]*StockIn, error)

	// ExistsByReference checks reference-code usage, optionally excluding
	// one movement (for updates against the record's own code).
	ExistsByReference(ctx context.Context, reference string, excludeID *id.ID) (bool, error)
}

// StockOutRepository defines persistence for the outbound journal.
type StockOutRepository interface {
	Create(ctx context.Context, movement *StockOut) error
	GetByID(ctx context.Context, movementID id.ID) (*StockOut, error)
	Update(ctx context.Context, movement *StockOut) error
	Delete(ctx context.Context, movementID id.ID) error
	List(ctx context.Context, filter MovementFilter) ([]*StockOut, error)

	ExistsByReference(ctx context.Context, reference string, excludeID *id.ID) (bool, error)
}

// TransferRepository defines persistence for the transfer journal.
type TransferRepository interface {
	Create(ctx context.Context, transfer *Transfer) error
	GetByID(ctx context.Context, transferID id.ID) (*Transfer, error)
	Update(ctx context.Context, transfer *Transfer) error
	Delete(ctx context.Context, transferID id.ID) error
	List(ctx context.Context, filter TransferFilter) ([]*Transfer, error)

	ExistsByReference(ctx context.Context, reference string, excludeID *id.ID) (bool, error)
}

// QuantityStore is the aggregate surface the engine adjusts.
// Implemented by the stock level repository.
type QuantityStore interface {
	// Adjust changes the pair's quantity by delta and returns the new value.
	// Positive deltas create the row implicitly; negative deltas fail with
	// InsufficientStock when the result would go below zero.
	Adjust(ctx context.Context, productID, warehouseID id.ID, delta int64) (int64, error)
}

// ActivityRecorder captures movement operations for the activity log.
// Recording happens after the transaction commits; failures are logged
// and never fail the operation.
type ActivityRecorder interface {
	Record(ctx context.Context, action, entityType string, entityID id.ID, payload any)
}
