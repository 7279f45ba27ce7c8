// Package stock_repo provides PostgreSQL persistence for stock levels.
package stock_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/stocklevel"
	"stockyard/internal/infrastructure/storage/postgres"
)

const levelTable = "stock_levels"

var levelCols = postgres.ExtractDBColumns[stocklevel.Level]()

// LevelRepo implements stocklevel.Repository.
type LevelRepo struct {
	txm *postgres.TxManager
}

// NewLevelRepo creates a new stock level repository.
func NewLevelRepo(txm *postgres.TxManager) *LevelRepo {
	return &LevelRepo{txm: txm}
}

func (r *LevelRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetByID retrieves a level by its surrogate ID.
func (r *LevelRepo) GetByID(ctx context.Context, levelID id.ID) (*stocklevel.Level, error) {
	q := r.builder().
		Select(levelCols...).
		From(levelTable).
		Where(squirrel.Eq{"id": levelID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var level stocklevel.Level
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &level, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(levelTable, levelID.String())
		}
		return nil, fmt.Errorf("get level: %w", err)
	}

	return &level, nil
}

// GetByPair retrieves the level for a (product, warehouse) pair.
func (r *LevelRepo) GetByPair(ctx context.Context, productID, warehouseID id.ID) (*stocklevel.Level, error) {
	q := r.builder().
		Select(levelCols...).
		From(levelTable).
		Where(squirrel.Eq{"product_id": productID, "warehouse_id": warehouseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var level stocklevel.Level
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &level, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(levelTable, productID.String()+"/"+warehouseID.String())
		}
		return nil, fmt.Errorf("get level by pair: %w", err)
	}

	return &level, nil
}

// List retrieves levels with optional filtering.
func (r *LevelRepo) List(ctx context.Context, filter stocklevel.Filter) ([]*stocklevel.Level, error) {
	q := r.builder().
		Select(levelCols...).
		From(levelTable).
		OrderBy("product_id", "warehouse_id")

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
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

	var levels []*stocklevel.Level
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &levels, sql, args...); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}

	return levels, nil
}

// Create inserts a new level row.
func (r *LevelRepo) Create(ctx context.Context, level *stocklevel.Level) error {
	q := r.builder().
		Insert(levelTable).
		SetMap(postgres.StructToMap(level))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicatePair(level.ProductID.String(), level.WarehouseID.String()).WithCause(err)
		}
		return fmt.Errorf("insert level: %w", err)
	}

	return nil
}

// Adjust changes the pair's quantity by delta and returns the new value.
//
// Positive deltas upsert: ON CONFLICT takes the row lock, so concurrent
// adjustments on the same pair serialize. Negative deltas lock the row with
// FOR UPDATE before checking sufficiency, so the check never runs against
// stale state. Callers must hold an open transaction.
func (r *LevelRepo) Adjust(ctx context.Context, productID, warehouseID id.ID, delta int64) (int64, error) {
	querier := r.txm.GetQuerier(ctx)

	if delta >= 0 {
		now := time.Now().UTC()
		q := r.builder().
			Insert(levelTable).
			Columns("id", "created_at", "updated_at", "product_id", "warehouse_id", "quantity").
			Values(id.New(), now, now, productID, warehouseID, delta).
			Suffix(`ON CONFLICT (product_id, warehouse_id)
				DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity,
				              updated_at = EXCLUDED.updated_at
				RETURNING quantity`)

		sql, args, err := q.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build upsert: %w", err)
		}

		var quantity int64
		if err := querier.QueryRow(ctx, sql, args...).Scan(&quantity); err != nil {
			return 0, fmt.Errorf("adjust level: %w", err)
		}
		return quantity, nil
	}

	// Negative delta: lock the row, check, then apply.
	lockQ := r.builder().
		Select("quantity").
		From(levelTable).
		Where(squirrel.Eq{"product_id": productID, "warehouse_id": warehouseID}).
		Suffix("FOR UPDATE")

	sql, args, err := lockQ.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build lock query: %w", err)
	}

	var available int64
	err = querier.QueryRow(ctx, sql, args...).Scan(&available)
	if err == pgx.ErrNoRows {
		return 0, apperror.NewInsufficientStock(productID.String(), warehouseID.String(), -delta, 0)
	}
	if err != nil {
		return 0, fmt.Errorf("lock level: %w", err)
	}

	if available+delta < 0 {
		return 0, apperror.NewInsufficientStock(productID.String(), warehouseID.String(), -delta, available)
	}

	updQ := r.builder().
		Update(levelTable).
		Set("quantity", squirrel.Expr("quantity + ?", delta)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"product_id": productID, "warehouse_id": warehouseID}).
		Suffix("RETURNING quantity")

	sql, args, err = updQ.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	var quantity int64
	if err := querier.QueryRow(ctx, sql, args...).Scan(&quantity); err != nil {
		return 0, fmt.Errorf("adjust level: %w", err)
	}

	return quantity, nil
}

// SetQuantity overwrites the quantity of an existing level row.
func (r *LevelRepo) SetQuantity(ctx context.Context, levelID id.ID, quantity int64) error {
	q := r.builder().
		Update(levelTable).
		Set("quantity", quantity).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": levelID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(levelTable, levelID.String())
	}

	return nil
}

// Delete removes a level row.
func (r *LevelRepo) Delete(ctx context.Context, levelID id.ID) error {
	q := r.builder().
		Delete(levelTable).
		Where(squirrel.Eq{"id": levelID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete level: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(levelTable, levelID.String())
	}

	return nil
}

// HasMovements reports whether any movement exists for the pair.
func (r *LevelRepo) HasMovements(ctx context.Context, productID, warehouseID id.ID) (bool, error) {
	const sql = `
		SELECT EXISTS (
			SELECT 1 FROM stock_in WHERE product_id = $1 AND warehouse_id = $2
			UNION ALL
			SELECT 1 FROM stock_out WHERE product_id = $1 AND warehouse_id = $2
		)`

	var exists bool
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, productID, warehouseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check movements: %w", err)
	}

	return exists, nil
}

var _ stocklevel.Repository = (*LevelRepo)(nil)
