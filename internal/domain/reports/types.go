// Package reports provides dashboard and inventory reporting.
package reports

import (
	"time"

	"stockyard/internal/core/id"
)

// --- Dashboard summary ---

// Summary holds the headline counters shown on the dashboard.
type Summary struct {
	TotalProducts    int64 `json:"totalProducts"`
	TotalWarehouses  int64 `json:"totalWarehouses"`
	TotalStock       int64 `json:"totalStock"`
	StockInToday     int64 `json:"stockInToday"`
	StockOutToday    int64 `json:"stockOutToday"`
	PendingTransfers int64 `json:"pendingTransfers"`
	LowStockCount    int64 `json:"lowStockCount"`
}

// --- Low stock ---

// LowStockItem is a product whose total on-hand quantity fell to or
// below its reorder threshold.
type LowStockItem struct {
	ProductID   id.ID  `json:"productId"`
	ProductName string `json:"productName"`
	Unit        string `json:"unit"`
	MinStock    int64  `json:"minStock"`
	TotalStock  int64  `json:"totalStock"`
}

// --- Inventory ---

// InventoryFilter narrows the inventory listing.
type InventoryFilter struct {
	ProductID   *id.ID
	WarehouseID *id.ID
	CategoryID  *id.ID
	Search      string
	Limit       int
	Offset      int
}

// InventoryItem is one stock level row joined with catalog names.
type InventoryItem struct {
	ProductID     id.ID  `json:"productId"`
	ProductName   string `json:"productName"`
	CategoryName  string `json:"categoryName"`
	Unit          string `json:"unit"`
	WarehouseID   id.ID  `json:"warehouseId"`
	WarehouseName string `json:"warehouseName"`
	Quantity      int64  `json:"quantity"`
	MinStock      int64  `json:"minStock"`
}

// InventoryReport is the paginated inventory listing.
type InventoryReport struct {
	Items      []InventoryItem `json:"items"`
	TotalCount int64           `json:"totalCount"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}

// --- Movement history ---

// MovementHistoryFilter narrows the recent-movement listing.
type MovementHistoryFilter struct {
	ProductID   *id.ID
	WarehouseID *id.ID
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}

// MovementHistoryItem is one journal entry of either direction.
type MovementHistoryItem struct {
	MovementID    id.ID     `json:"movementId"`
	Kind          string    `json:"kind"` // "in" or "out"
	Date          time.Time `json:"date"`
	ProductID     id.ID     `json:"productId"`
	ProductName   string    `json:"productName"`
	WarehouseID   id.ID     `json:"warehouseId"`
	WarehouseName string    `json:"warehouseName"`
	Quantity      int64     `json:"quantity"`
	ReferenceCode string    `json:"referenceCode"`
}
