package reports

import (
	"context"
	"fmt"
)

// Service provides dashboard and inventory reporting.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSummary returns the dashboard counters.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	summary, err := s.repo.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return summary, nil
}

// GetLowStock returns products at or below their reorder threshold.
func (s *Service) GetLowStock(ctx context.Context, limit int) ([]LowStockItem, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	items, err := s.repo.GetLowStock(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get low stock: %w", err)
	}
	return items, nil
}

// GetInventory returns the paginated inventory listing.
func (s *Service) GetInventory(ctx context.Context, filter InventoryFilter) (*InventoryReport, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetInventory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return report, nil
}

// GetMovementHistory returns recent movements of both directions.
func (s *Service) GetMovementHistory(ctx context.Context, filter MovementHistoryFilter) ([]MovementHistoryItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	items, err := s.repo.GetMovementHistory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get movement history: %w", err)
	}
	return items, nil
}
