package ledger_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/storage/postgres"
)

const stockOutTable = "stock_out"

// StockOutRepo implements ledger.StockOutRepository.
type StockOutRepo struct {
	movementRepo[*ledger.StockOut]
}

// NewStockOutRepo creates a new outbound journal repository.
func NewStockOutRepo(txm *postgres.TxManager) *StockOutRepo {
	return &StockOutRepo{
		movementRepo: newMovementRepo[*ledger.StockOut](
			txm,
			stockOutTable,
			"stock out",
			postgres.ExtractDBColumns[ledger.StockOut](),
			func() *ledger.StockOut { return &ledger.StockOut{} },
		),
	}
}

// List retrieves outbound movements, newest first.
func (r *StockOutRepo) List(ctx context.Context, filter ledger.MovementFilter) ([]*ledger.StockOut, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(stockOutTable).
		OrderBy("date DESC", "created_at DESC")

	q = applyMovementFilter(q, filter)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []*ledger.StockOut
	if err := pgxscan.Select(ctx, r.querier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock out: %w", err)
	}

	return movements, nil
}

var _ ledger.StockOutRepository = (*StockOutRepo)(nil)
