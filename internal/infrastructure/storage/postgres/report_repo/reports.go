// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// GetSummary returns the dashboard headline counters.
func (r *ReportRepo) GetSummary(ctx context.Context) (*reports.Summary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products) as total_products,
			(SELECT COUNT(*) FROM warehouses) as total_warehouses,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_levels) as total_stock,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_in
				WHERE date >= CURRENT_DATE AND date < CURRENT_DATE + 1) as stock_in_today,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_out
				WHERE date >= CURRENT_DATE AND date < CURRENT_DATE + 1) as stock_out_today,
			(SELECT COUNT(*) FROM stock_transfers WHERE status = 'pending') as pending_transfers,
			(SELECT COUNT(*) FROM (
				SELECT p.id
				FROM products p
				LEFT JOIN stock_levels sl ON sl.product_id = p.id
				WHERE p.min_stock > 0
				GROUP BY p.id, p.min_stock
				HAVING COALESCE(SUM(sl.quantity), 0) <= p.min_stock
			) low) as low_stock_count
	`

	var summary reports.Summary
	querier := r.txm.GetQuerier(ctx)
	err := querier.QueryRow(ctx, query).Scan(
		&summary.TotalProducts,
		&summary.TotalWarehouses,
		&summary.TotalStock,
		&summary.StockInToday,
		&summary.StockOutToday,
		&summary.PendingTransfers,
		&summary.LowStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("summary report: %w", err)
	}

	return &summary, nil
}

// GetLowStock returns products at or below their reorder threshold.
func (r *ReportRepo) GetLowStock(ctx context.Context, limit int) ([]reports.LowStockItem, error) {
	query := `
		SELECT
			p.id as product_id,
			p.name as product_name,
			p.unit,
			p.min_stock,
			COALESCE(SUM(sl.quantity), 0) as total_stock
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
		WHERE p.min_stock > 0
		GROUP BY p.id, p.name, p.unit, p.min_stock
		HAVING COALESCE(SUM(sl.quantity), 0) <= p.min_stock
		ORDER BY COALESCE(SUM(sl.quantity), 0)::float8 / p.min_stock, p.name
		LIMIT $1
	`

	var items []reports.LowStockItem
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, limit); err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}

	return items, nil
}

// GetInventory returns stock levels joined with catalog names.
func (r *ReportRepo) GetInventory(ctx context.Context, filter reports.InventoryFilter) (*reports.InventoryReport, error) {
	where := ` WHERE 1=1`
	args := make([]any, 0, 4)

	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		where += fmt.Sprintf(` AND sl.product_id = $%d`, len(args))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		where += fmt.Sprintf(` AND sl.warehouse_id = $%d`, len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND p.name ILIKE $%d`, len(args))
	}

	base := `
		FROM stock_levels sl
		JOIN products p ON sl.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		JOIN warehouses w ON sl.warehouse_id = w.id
	` + where

	querier := r.txm.GetQuerier(ctx)

	report := &reports.InventoryReport{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	if err := querier.QueryRow(ctx, `SELECT COUNT(*) `+base, args...).Scan(&report.TotalCount); err != nil {
		return nil, fmt.Errorf("count inventory: %w", err)
	}

	query := `
		SELECT
			sl.product_id,
			p.name as product_name,
			c.name as category_name,
			p.unit,
			sl.warehouse_id,
			w.name as warehouse_name,
			sl.quantity,
			p.min_stock
	` + base + ` ORDER BY p.name, w.name`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	if err := pgxscan.Select(ctx, querier, &report.Items, query, args...); err != nil {
		return nil, fmt.Errorf("inventory report: %w", err)
	}

	return report, nil
}

// GetMovementHistory returns inbound and outbound entries interleaved, newest first.
func (r *ReportRepo) GetMovementHistory(ctx context.Context, filter reports.MovementHistoryFilter) ([]reports.MovementHistoryItem, error) {
	where := ` WHERE 1=1`
	args := make([]any, 0, 4)

	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		where += fmt.Sprintf(` AND m.product_id = $%d`, len(args))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		where += fmt.Sprintf(` AND m.warehouse_id = $%d`, len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		where += fmt.Sprintf(` AND m.date >= $%d`, len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		where += fmt.Sprintf(` AND m.date <= $%d`, len(args))
	}

	movementSelect := func(table, kind string) string {
		return `
			SELECT
				m.id as movement_id,
				'` + kind + `' as kind,
				m.date,
				m.product_id,
				p.name as product_name,
				m.warehouse_id,
				w.name as warehouse_name,
				m.quantity,
				m.reference_code
			FROM ` + table + ` m
			JOIN products p ON m.product_id = p.id
			JOIN warehouses w ON m.warehouse_id = w.id
		` + where
	}

	query := movementSelect("stock_in", "in") +
		` UNION ALL ` + movementSelect("stock_out", "out") +
		` ORDER BY date DESC, movement_id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	var items []reports.MovementHistoryItem
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("movement history: %w", err)
	}

	return items, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
