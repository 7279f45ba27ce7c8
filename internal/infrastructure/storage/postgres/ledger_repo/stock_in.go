package ledger_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/storage/postgres"
)

const stockInTable = "stock_in"

// StockInRepo implements ledger.StockInRepository.
type StockInRepo struct {
	movementRepo[*ledger.StockIn]
}

// NewStockInRepo creates a new inbound journal repository.
func NewStockInRepo(txm *postgres.TxManager) *StockInRepo {
	return &StockInRepo{
		movementRepo: newMovementRepo[*ledger.StockIn](
			txm,
			stockInTable,
			"stock in",
			postgres.ExtractDBColumns[ledger.StockIn](),
			func() *ledger.StockIn { return &ledger.StockIn{} },
		),
	}
}

// List retrieves inbound movements, newest first.
func (r *StockInRepo) List(ctx context.Context, filter ledger.MovementFilter) ([]*ledger.StockIn, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(stockInTable).
		OrderBy("date DESC", "created_at DESC")

	q = applyMovementFilter(q, filter)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []*ledger.StockIn
	if err := pgxscan.Select(ctx, r.querier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock in: %w", err)
	}

	return movements, nil
}

var _ ledger.StockInRepository = (*StockInRepo)(nil)
