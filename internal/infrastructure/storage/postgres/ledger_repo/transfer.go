package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/storage/postgres"
)

const transferTable = "stock_transfers"

// TransferRepo implements ledger.TransferRepository.
type TransferRepo struct {
	movementRepo[*ledger.Transfer]
}

// NewTransferRepo creates a new transfer journal repository.
func NewTransferRepo(txm *postgres.TxManager) *TransferRepo {
	return &TransferRepo{
		movementRepo: newMovementRepo[*ledger.Transfer](
			txm,
			transferTable,
			"transfer",
			postgres.ExtractDBColumns[ledger.Transfer](),
			func() *ledger.Transfer { return &ledger.Transfer{} },
		),
	}
}

// List retrieves transfers, newest first.
func (r *TransferRepo) List(ctx context.Context, filter ledger.TransferFilter) ([]*ledger.Transfer, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(transferTable).
		OrderBy("date DESC", "created_at DESC")

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.FromWarehouseID != nil {
		q = q.Where(squirrel.Eq{"from_warehouse_id": *filter.FromWarehouseID})
	}
	if filter.ToWarehouseID != nil {
		q = q.Where(squirrel.Eq{"to_warehouse_id": *filter.ToWarehouseID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var transfers []*ledger.Transfer
	if err := pgxscan.Select(ctx, r.querier(ctx), &transfers, sql, args...); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	return transfers, nil
}

var _ ledger.TransferRepository = (*TransferRepo)(nil)
