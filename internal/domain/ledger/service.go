package ledger

import (
	"context"
	"fmt"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/pkg/logger"
)

// Service is the ledger engine. Every create/update/delete of an inbound
// or outbound movement mutates the journal and the stock level aggregate
// inside one transaction, so the two never diverge: a failed sufficiency
// check rolls back the journal write as well.
//
// Per-pair serialization comes from the QuantityStore implementation
// (row locks on the (product, warehouse) key).
type Service struct {
	txManager tx.Manager
	stockIn   StockInRepository
	stockOut  StockOutRepository
	transfers TransferRepository
	levels    QuantityStore
	activity  ActivityRecorder
}

// Config bundles the service dependencies.
type Config struct {
	TxManager tx.Manager
	StockIn   StockInRepository
	StockOut  StockOutRepository
	Transfers TransferRepository
	Levels    QuantityStore

	// Activity is optional; nil disables activity recording.
	Activity ActivityRecorder
}

// NewService creates the ledger engine.
func NewService(cfg Config) *Service {
	return &Service{
		txManager: cfg.TxManager,
		stockIn:   cfg.StockIn,
		stockOut:  cfg.StockOut,
		transfers: cfg.Transfers,
		levels:    cfg.Levels,
		activity:  cfg.Activity,
	}
}

func (s *Service) record(ctx context.Context, action, entityType string, entityID id.ID, payload any) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, action, entityType, entityID, payload)
}

func stampCreatedBy(ctx context.Context, createdBy *string) {
	if *createdBy == "" {
		*createdBy = appctx.GetUserID(ctx)
	}
}

// --- Inbound movements ---

// CreateStockIn records goods received and increases the pair's level.
func (s *Service) CreateStockIn(ctx context.Context, m *StockIn) (*StockIn, error) {
	if err := m.Validate(ctx); err != nil {
		return nil, err
	}
	stampCreatedBy(ctx, &m.CreatedBy)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stockIn.Create(ctx, m); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return fmt.Errorf("insert stock in: %w", err)
		}

		if _, err := s.levels.Adjust(ctx, m.ProductID, m.WarehouseID, m.Quantity); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock in created",
		"movement_id", m.ID,
		"product_id", m.ProductID,
		"warehouse_id", m.WarehouseID,
		"quantity", m.Quantity,
	)
	s.record(ctx, "create", "stock_in", m.ID, m)

	return m, nil
}

// GetStockIn retrieves an inbound movement.
func (s *Service) GetStockIn(ctx context.Context, movementID id.ID) (*StockIn, error) {
	return s.stockIn.GetByID(ctx, movementID)
}

// ListStockIn lists inbound movements.
func (s *Service) ListStockIn(ctx context.Context, filter MovementFilter) ([]*StockIn, error) {
	return s.stockIn.List(ctx, filter)
}

// UpdateStockIn replaces an inbound movement's fields.
// The old effect is reversed on the old (product, warehouse) pair before
// the new effect is applied on the new pair, all in one transaction, so
// moving a movement between pairs never transiently double-counts either.
func (s *Service) UpdateStockIn(ctx context.Context, m *StockIn) (*StockIn, error) {
	if err := m.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.stockIn.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}

		if m.ReferenceCode != old.ReferenceCode {
			if err := s.checkReferenceFree(ctx, s.stockIn.ExistsByReference, "stock in", m.ReferenceCode, &m.ID); err != nil {
				return err
			}
		}

		// Reverse old effect first: may hit InsufficientStock when later
		// outbounds already consumed the received quantity.
		if _, err := s.levels.Adjust(ctx, old.ProductID, old.WarehouseID, -old.Quantity); err != nil {
			return err
		}
		if _, err := s.levels.Adjust(ctx, m.ProductID, m.WarehouseID, m.Quantity); err != nil {
			return err
		}

		m.CreatedAt = old.CreatedAt
		m.CreatedBy = old.CreatedBy
		m.Touch()
		if err := s.stockIn.Update(ctx, m); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return fmt.Errorf("update stock in: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock in updated", "movement_id", m.ID)
	s.record(ctx, "update", "stock_in", m.ID, m)

	return m, nil
}

// DeleteStockIn removes an inbound movement and reverses its effect.
func (s *Service) DeleteStockIn(ctx context.Context, movementID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.stockIn.GetByID(ctx, movementID)
		if err != nil {
			return err
		}

		if _, err := s.levels.Adjust(ctx, old.ProductID, old.WarehouseID, -old.Quantity); err != nil {
			return err
		}

		return s.stockIn.Delete(ctx, movementID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock in deleted", "movement_id", movementID)
	s.record(ctx, "delete", "stock_in", movementID, nil)

	return nil
}

// --- Outbound movements ---

// CreateStockOut records goods issued and decreases the pair's level.
// Fails with InsufficientStock, rolling back the journal insert, when the
// warehouse does not hold enough of the product.
func (s *Service) CreateStockOut(ctx context.Context, m *StockOut) (*StockOut, error) {
	if err := m.Validate(ctx); err != nil {
		return nil, err
	}
	stampCreatedBy(ctx, &m.CreatedBy)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stockOut.Create(ctx, m); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return fmt.Errorf("insert stock out: %w", err)
		}

		if _, err := s.levels.Adjust(ctx, m.ProductID, m.WarehouseID, -m.Quantity); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock out created",
		"movement_id", m.ID,
		"product_id", m.ProductID,
		"warehouse_id", m.WarehouseID,
		"quantity", m.Quantity,
	)
	s.record(ctx, "create", "stock_out", m.ID, m)

	return m, nil
}

// GetStockOut retrieves an outbound movement.
func (s *Service) GetStockOut(ctx context.Context, movementID id.ID) (*StockOut, error) {
	return s.stockOut.GetByID(ctx, movementID)
}

// ListStockOut lists outbound movements.
func (s *Service) ListStockOut(ctx context.Context, filter MovementFilter) ([]*StockOut, error) {
	return s.stockOut.List(ctx, filter)
}

// UpdateStockOut replaces an outbound movement's fields.
// Reversal adds the old quantity back to the old pair, then the new
// quantity is withdrawn from the new pair, in one transaction.
func (s *Service) UpdateStockOut(ctx context.Context, m *StockOut) (*StockOut, error) {
	if err := m.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.stockOut.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}

		if m.ReferenceCode != old.ReferenceCode {
			if err := s.checkReferenceFree(ctx, s.stockOut.ExistsByReference, "stock out", m.ReferenceCode, &m.ID); err != nil {
				return err
			}
		}

		if _, err := s.levels.Adjust(ctx, old.ProductID, old.WarehouseID, old.Quantity); err != nil {
			return err
		}
		if _, err := s.levels.Adjust(ctx, m.ProductID, m.WarehouseID, -m.Quantity); err != nil {
			return err
		}

		m.CreatedAt = old.CreatedAt
		m.CreatedBy = old.CreatedBy
		m.Touch()
		if err := s.stockOut.Update(ctx, m); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return fmt.Errorf("update stock out: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock out updated", "movement_id", m.ID)
	s.record(ctx, "update", "stock_out", m.ID, m)

	return m, nil
}

// DeleteStockOut removes an outbound movement and adds its quantity back.
func (s *Service) DeleteStockOut(ctx context.Context, movementID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.stockOut.GetByID(ctx, movementID)
		if err != nil {
			return err
		}

		if _, err := s.levels.Adjust(ctx, old.ProductID, old.WarehouseID, old.Quantity); err != nil {
			return err
		}

		return s.stockOut.Delete(ctx, movementID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock out deleted", "movement_id", movementID)
	s.record(ctx, "delete", "stock_out", movementID, nil)

	return nil
}

// --- Transfers ---

// CreateTransfer records a planned inter-warehouse movement.
// Transfers do not change stock levels; status is a plain attribute.
func (s *Service) CreateTransfer(ctx context.Context, t *Transfer) (*Transfer, error) {
	if t.Status == "" {
		t.Status = TransferPending
	}
	if err := t.Validate(ctx); err != nil {
		return nil, err
	}
	stampCreatedBy(ctx, &t.CreatedBy)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.transfers.Create(ctx, t); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return fmt.Errorf("insert transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transfer created", "transfer_id", t.ID, "status", t.Status)
	s.record(ctx, "create", "stock_transfer", t.ID, t)

	return t, nil
}

// GetTransfer retrieves a transfer.
func (s *Service) GetTransfer(ctx context.Context, transferID id.ID) (*Transfer, error) {
	return s.transfers.GetByID(ctx, transferID)
}

// ListTransfers lists transfers.
func (s *Service) ListTransfers(ctx context.Context, filter TransferFilter) ([]*Transfer, error) {
	return s.transfers.List(ctx, filter)
}

// UpdateTransfer replaces a transfer's fields.
func (s *Service) UpdateTransfer(ctx context.Context, t *Transfer) (*Transfer, error) {
	if err := t.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.transfers.GetByID(ctx, t.ID)
		if err != nil {
			return err
		}

		if t.ReferenceCode != old.ReferenceCode {
			if err := s.checkReferenceFree(ctx, s.transfers.ExistsByReference, "transfer", t.ReferenceCode, &t.ID); err != nil {
				return err
			}
		}

		t.CreatedAt = old.CreatedAt
		t.CreatedBy = old.CreatedBy
		t.Touch()
		if err := s.transfers.Update(ctx, t); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return fmt.Errorf("update transfer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transfer updated", "transfer_id", t.ID, "status", t.Status)
	s.record(ctx, "update", "stock_transfer", t.ID, t)

	return t, nil
}

// DeleteTransfer removes a transfer record.
func (s *Service) DeleteTransfer(ctx context.Context, transferID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.transfers.GetByID(ctx, transferID); err != nil {
			return err
		}
		return s.transfers.Delete(ctx, transferID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "transfer deleted", "transfer_id", transferID)
	s.record(ctx, "delete", "stock_transfer", transferID, nil)

	return nil
}

// --- Helpers ---

type existsByReferenceFn func(ctx context.Context, reference string, excludeID *id.ID) (bool, error)

func (s *Service) checkReferenceFree(ctx context.Context, exists existsByReferenceFn, movement, reference string, excludeID *id.ID) error {
	taken, err := exists(ctx, reference, excludeID)
	if err != nil {
		return fmt.Errorf("check reference code: %w", err)
	}
	if taken {
		return apperror.NewDuplicateReference(movement, reference)
	}
	return nil
}
