// Package ledger_repo provides PostgreSQL persistence for the movement journals.
package ledger_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/storage/postgres"
)

// movementRepo provides the journal operations shared by all movement kinds.
// The unique index on reference_code makes DuplicateReference authoritative
// even when two writers race past the service-level pre-check.
type movementRepo[T any] struct {
	txm          *postgres.TxManager
	tableName    string
	movementName string
	selectCols   []string
	newFn        func() T
}

func newMovementRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	movementName string,
	selectCols []string,
	newFn func() T,
) movementRepo[T] {
	return movementRepo[T]{
		txm:          txm,
		tableName:    tableName,
		movementName: movementName,
		selectCols:   selectCols,
		newFn:        newFn,
	}
}

func (r *movementRepo[T]) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *movementRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new movement using its "db" tags.
func (r *movementRepo[T]) Create(ctx context.Context, movement T) error {
	data := postgres.StructToMap(movement)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in movement")
	}

	q := r.builder().
		Insert(r.tableName).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if refErr := r.asDuplicateReference(err, data); refErr != nil {
			return refErr
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// GetByID retrieves a movement by ID.
func (r *movementRepo[T]) GetByID(ctx context.Context, movementID id.ID) (T, error) {
	movement := r.newFn()

	q := r.builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": movementID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return movement, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), movement, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return movement, apperror.NewNotFound(r.movementName, movementID.String())
		}
		return movement, fmt.Errorf("get %s: %w", r.movementName, err)
	}

	return movement, nil
}

// Update rewrites an existing movement.
func (r *movementRepo[T]) Update(ctx context.Context, movement T) error {
	data := postgres.StructToMap(movement)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in movement")
	}

	movementID, ok := data["id"]
	if !ok {
		return fmt.Errorf("movement has no 'id' field with db tag")
	}
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(r.tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": movementID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if refErr := r.asDuplicateReference(err, data); refErr != nil {
			return refErr
		}
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.movementName, fmt.Sprintf("%v", movementID))
	}

	return nil
}

// Delete removes a movement row.
func (r *movementRepo[T]) Delete(ctx context.Context, movementID id.ID) error {
	q := r.builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": movementID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.movementName, movementID.String())
	}

	return nil
}

// ExistsByReference checks reference-code usage, optionally excluding one movement.
func (r *movementRepo[T]) ExistsByReference(ctx context.Context, reference string, excludeID *id.ID) (bool, error) {
	q := r.builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"reference_code": reference}).
		Limit(1)

	if excludeID != nil {
		q = q.Where(squirrel.NotEq{"id": *excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by reference: %w", err)
	}

	return true, nil
}

func (r *movementRepo[T]) asDuplicateReference(err error, data map[string]any) *apperror.AppError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		reference, _ := data["reference_code"].(string)
		return apperror.NewDuplicateReference(r.movementName, reference).WithCause(err)
	}
	return nil
}

// applyMovementFilter adds the pair and date window conditions shared by
// the inbound and outbound journal listings.
func applyMovementFilter(q squirrel.SelectBuilder, filter ledger.MovementFilter) squirrel.SelectBuilder {
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q
}
