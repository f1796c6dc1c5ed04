// Package store persists canonical sales records, the notification log, and
// the archived upload history. It is the only package that talks to Postgres
// about sales data; the engines stay pure over in-memory records.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"demandai/database"
	"demandai/models"
)

// InsertRecords appends a batch of records.
func InsertRecords(ctx context.Context, records []models.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(records))
	for i, r := range records {
		rows[i] = []interface{}{r.Date.Time, r.Product, r.Region, r.UnitsSold, r.Price, r.Inventory}
	}

	_, err := database.GetDB().CopyFrom(
		ctx,
		pgx.Identifier{"sales_records"},
		[]string{"date", "product", "region", "units_sold", "price", "inventory"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sales records: %w", err)
	}
	return nil
}

// FetchAll returns every stored record in insertion order.
func FetchAll(ctx context.Context) ([]models.SalesRecord, error) {
	query := `
		SELECT date, product, region, units_sold, price, inventory
		FROM sales_records
		ORDER BY id
	`
	rows, err := database.GetDB().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FetchRecent returns up to limit records in reverse insertion order.
func FetchRecent(ctx context.Context, limit int) ([]models.SalesRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT date, product, region, units_sold, price, inventory
		FROM sales_records
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := database.GetDB().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent sales records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Clear archives all current records as one batch, then empties the store.
func Clear(ctx context.Context) error {
	db := database.GetDB()

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO sales_archive (archived_at, date, product, region, units_sold, price, inventory)
		SELECT NOW(), date, product, region, units_sold, price, inventory
		FROM sales_records
	`)
	if err != nil {
		return fmt.Errorf("failed to archive sales records: %w", err)
	}

	if _, err = tx.Exec(ctx, "DELETE FROM sales_records"); err != nil {
		return fmt.Errorf("failed to clear sales records: %w", err)
	}

	return tx.Commit(ctx)
}

// ArchivedHistory summarizes archived batches, newest first.
func ArchivedHistory(ctx context.Context) ([]models.ArchivedBatch, error) {
	query := `
		SELECT archived_at, COUNT(*), COALESCE(SUM(units_sold * price), 0)
		FROM sales_archive
		GROUP BY archived_at
		ORDER BY archived_at DESC
	`
	rows, err := database.GetDB().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch archived history: %w", err)
	}
	defer rows.Close()

	batches := make([]models.ArchivedBatch, 0)
	for rows.Next() {
		var b models.ArchivedBatch
		if err := rows.Scan(&b.ArchivedAt, &b.RecordCount, &b.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan archived batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func scanRecords(rows pgx.Rows) ([]models.SalesRecord, error) {
	records := make([]models.SalesRecord, 0)
	for rows.Next() {
		var r models.SalesRecord
		var date time.Time
		if err := rows.Scan(&date, &r.Product, &r.Region, &r.UnitsSold, &r.Price, &r.Inventory); err != nil {
			return nil, fmt.Errorf("failed to scan sales record: %w", err)
		}
		r.Date = models.NewDate(date)
		records = append(records, r)
	}
	return records, rows.Err()
}
