// Package warehouse provides the Warehouse catalog.
// Warehouses represent physical locations where stock is held.
package warehouse

import (
	"stockyard/internal/core/entity"
)

// Warehouse represents a storage location for goods.
type Warehouse struct {
	entity.Catalog

	// Location is the physical address or site name
	Location *string `db:"location" json:"location,omitempty"`
}

// NewWarehouse creates a new Warehouse with required fields.
func NewWarehouse(name string) *Warehouse {
	return &Warehouse{
		Catalog: entity.NewCatalog(name),
	}
}
