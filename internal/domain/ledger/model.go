// Package ledger provides the stock ledger engine: movement journals
// (inbound, outbound, transfer) and the operations that keep them in
// exact agreement with the stock level aggregate.
package ledger

import (
	"context"
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

// SourceType classifies where an inbound movement came from.
type SourceType string

const (
	SourceSupplier   SourceType = "supplier"
	SourceWarehouse  SourceType = "warehouse"
	SourceReturn     SourceType = "return"
	SourceAdjustment SourceType = "adjustment"
)

// DestinationType classifies where an outbound movement went.
type DestinationType string

const (
	DestinationCustomer   DestinationType = "customer"
	DestinationWarehouse  DestinationType = "warehouse"
	DestinationScrap      DestinationType = "scrap"
	DestinationAdjustment DestinationType = "adjustment"
)

// TransferStatus is the lifecycle state of a transfer record.
// Informational only: status transitions do not move stock.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// StockIn is an inbound movement: goods received into a warehouse.
type StockIn struct {
	entity.BaseEntity

	Date        time.Time `db:"date" json:"date"`
	ProductID   id.ID     `db:"product_id" json:"productId"`
	WarehouseID id.ID     `db:"warehouse_id" json:"warehouseId"`

	// Quantity is a positive integer amount received
	Quantity int64 `db:"quantity" json:"quantity"`

	// SourceType and SourceDetail describe the origin (optional)
	SourceType   *SourceType `db:"source_type" json:"sourceType,omitempty"`
	SourceDetail *string     `db:"source_detail" json:"sourceDetail,omitempty"`

	// ReferenceCode is caller-supplied and unique across inbound movements
	ReferenceCode string `db:"reference_code" json:"referenceCode"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	// CreatedBy is the acting user's ID
	CreatedBy string `db:"created_by" json:"createdBy,omitempty"`
}

// StockOut is an outbound movement: goods issued from a warehouse.
type StockOut struct {
	entity.BaseEntity

	Date        time.Time `db:"date" json:"date"`
	ProductID   id.ID     `db:"product_id" json:"productId"`
	WarehouseID id.ID     `db:"warehouse_id" json:"warehouseId"`

	Quantity int64 `db:"quantity" json:"quantity"`

	// DestinationType and DestinationDetail describe the target (optional)
	DestinationType   *DestinationType `db:"destination_type" json:"destinationType,omitempty"`
	DestinationDetail *string          `db:"destination_detail" json:"destinationDetail,omitempty"`

	// ReferenceCode is caller-supplied and unique across outbound movements
	ReferenceCode string `db:"reference_code" json:"referenceCode"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	CreatedBy string `db:"created_by" json:"createdBy,omitempty"`
}

// Transfer records a planned movement of goods between two warehouses.
// It is a plain journal record: creating, updating or deleting a transfer
// does not change stock levels.
type Transfer struct {
	entity.BaseEntity

	Date            time.Time `db:"date" json:"date"`
	ProductID       id.ID     `db:"product_id" json:"productId"`
	FromWarehouseID id.ID     `db:"from_warehouse_id" json:"fromWarehouseId"`
	ToWarehouseID   id.ID     `db:"to_warehouse_id" json:"toWarehouseId"`

	Quantity int64 `db:"quantity" json:"quantity"`

	// ReferenceCode is unique across transfers
	ReferenceCode string `db:"reference_code" json:"referenceCode"`

	Status TransferStatus `db:"status" json:"status"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	CreatedBy string `db:"created_by" json:"createdBy,omitempty"`
}

// --- Validation ---

// Validate implements entity.Validatable interface.
func (m *StockIn) Validate(ctx context.Context) error {
	if err := validateMovementCore(m.ProductID, m.WarehouseID, m.Quantity, m.ReferenceCode, m.Date); err != nil {
		return err
	}
	if m.SourceType != nil && !isValidSourceType(*m.SourceType) {
		return apperror.NewValidation("invalid source type").
			WithDetail("field", "sourceType").
			WithDetail("value", string(*m.SourceType))
	}
	return nil
}

// Validate implements entity.Validatable interface.
func (m *StockOut) Validate(ctx context.Context) error {
	if err := validateMovementCore(m.ProductID, m.WarehouseID, m.Quantity, m.ReferenceCode, m.Date); err != nil {
		return err
	}
	if m.DestinationType != nil && !isValidDestinationType(*m.DestinationType) {
		return apperror.NewValidation("invalid destination type").
			WithDetail("field", "destinationType").
			WithDetail("value", string(*m.DestinationType))
	}
	return nil
}

// Validate implements entity.Validatable interface.
func (t *Transfer) Validate(ctx context.Context) error {
	if err := validateMovementCore(t.ProductID, t.FromWarehouseID, t.Quantity, t.ReferenceCode, t.Date); err != nil {
		return err
	}
	if id.IsNil(t.ToWarehouseID) {
		return apperror.NewValidation("destination warehouse is required").
			WithDetail("field", "toWarehouseId")
	}
	if t.FromWarehouseID == t.ToWarehouseID {
		return apperror.NewValidation("source and destination warehouses must differ").
			WithDetail("field", "toWarehouseId")
	}
	if !isValidTransferStatus(t.Status) {
		return apperror.NewValidation("invalid transfer status").
			WithDetail("field", "status").
			WithDetail("value", string(t.Status))
	}
	return nil
}

func validateMovementCore(productID, warehouseID id.ID, quantity int64, reference string, date time.Time) error {
	if id.IsNil(productID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if id.IsNil(warehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}
	if quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity").
			WithDetail("value", quantity)
	}
	if reference == "" {
		return apperror.NewValidation("reference code is required").
			WithDetail("field", "referenceCode")
	}
	if date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

func isValidSourceType(t SourceType) bool {
	switch t {
	case SourceSupplier, SourceWarehouse, SourceReturn, SourceAdjustment:
		return true
	}
	return false
}

func isValidDestinationType(t DestinationType) bool {
	switch t {
	case DestinationCustomer, DestinationWarehouse, DestinationScrap, DestinationAdjustment:
		return true
	}
	return false
}

func isValidTransferStatus(s TransferStatus) bool {
	switch s {
	case TransferPending, TransferCompleted, TransferCancelled:
		return true
	}
	return false
}
