package stocklevel

import (
	"context"
	"fmt"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/pkg/logger"
)

// Service provides the direct stock-level management surface:
// seeding initial quantities and corrections that bypass the journals.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock level service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Get retrieves a level by ID.
func (s *Service) Get(ctx context.Context, levelID id.ID) (*Level, error) {
	return s.repo.GetByID(ctx, levelID)
}

// GetByPair retrieves the level for a (product, warehouse) pair.
func (s *Service) GetByPair(ctx context.Context, productID, warehouseID id.ID) (*Level, error) {
	return s.repo.GetByPair(ctx, productID, warehouseID)
}

// List retrieves levels with filtering.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Level, error) {
	return s.repo.List(ctx, filter)
}

// Create seeds a level for a new pair.
// Negative quantities clamp to zero, never stored below the floor.
// Fails with DuplicatePair when the pair already has a row.
func (s *Service) Create(ctx context.Context, productID, warehouseID id.ID, quantity int64) (*Level, error) {
	level := NewLevel(productID, warehouseID, quantity)
	if err := level.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, level); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return fmt.Errorf("create stock level: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock level created",
		"product_id", productID,
		"warehouse_id", warehouseID,
		"quantity", level.Quantity,
	)

	return level, nil
}

// Update overwrites the quantity of an existing level.
// Negative quantities clamp to zero.
func (s *Service) Update(ctx context.Context, levelID id.ID, quantity int64) (*Level, error) {
	if quantity < 0 {
		quantity = 0
	}

	var level *Level
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		level, err = s.repo.GetByID(ctx, levelID)
		if err != nil {
			return err
		}

		if err := s.repo.SetQuantity(ctx, levelID, quantity); err != nil {
			return fmt.Errorf("set quantity: %w", err)
		}
		level.Quantity = quantity
		level.Touch()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock level updated", "level_id", levelID, "quantity", quantity)

	return level, nil
}

// Delete removes a level row.
// Fails with StillReferenced while inbound or outbound movements exist
// for the pair: deleting the aggregate would orphan the journal history.
func (s *Service) Delete(ctx context.Context, levelID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		level, err := s.repo.GetByID(ctx, levelID)
		if err != nil {
			return err
		}

		referenced, err := s.repo.HasMovements(ctx, level.ProductID, level.WarehouseID)
		if err != nil {
			return fmt.Errorf("check movements: %w", err)
		}
		if referenced {
			return apperror.NewStillReferenced("stock level", levelID.String())
		}

		return s.repo.Delete(ctx, levelID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock level deleted", "level_id", levelID)

	return nil
}
