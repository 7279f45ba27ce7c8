package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	GetSummary(ctx context.Context) (*Summary, error)
	GetLowStock(ctx context.Context, limit int) ([]LowStockItem, error)
	GetInventory(ctx context.Context, filter InventoryFilter) (*InventoryReport, error)
	GetMovementHistory(ctx context.Context, filter MovementHistoryFilter) ([]MovementHistoryItem, error)
}
