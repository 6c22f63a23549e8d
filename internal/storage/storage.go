// Package storage persists cleansed rows into the relational schema and
// recomputes the KPIs via SQL aggregation.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"orderpipe/internal/kpi"
	"orderpipe/internal/metrics"
	"orderpipe/internal/models"
)

// timestampLayout is how UTC timestamps are stored. The fixed format
// keeps lexicographic and chronological order identical, so range
// filters compare as text.
const timestampLayout = "2006-01-02T15:04:05Z"

// Store wraps the database handle for one pipeline invocation. The
// connection is scoped to the invocation and released by Close.
type Store struct {
	db      *sql.DB
	metrics *metrics.Registry
}

// Open connects to the database. The metrics registry may be nil.
func Open(driver, dsn string, reg *metrics.Registry) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, metrics: reg}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTables creates the schema if it does not exist.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, ddl := range []string{createCustomersTable, createOrdersFactTable, createOrderItemsTable} {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}

	return nil
}

// UpsertCustomers writes customer rows in one transaction, keyed on
// mobile_number. Re-running over unchanged input is a no-op in effect.
func (s *Store) UpsertCustomers(ctx context.Context, customers []models.Customer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin customers transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertCustomer)
	if err != nil {
		return fmt.Errorf("prepare customer upsert: %w", err)
	}
	defer stmt.Close()

	for _, c := range customers {
		if _, err := stmt.ExecContext(ctx, c.CustomerID, c.CustomerName, c.MobileNumber, c.Region); err != nil {
			return fmt.Errorf("upsert customer %d: %w", c.MobileNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CustomersUpserted.Add(float64(len(customers)))
	}

	return nil
}

// LoadOrders writes order facts and then items inside a single
// transaction, so a failed row leaves nothing of the batch committed.
func (s *Store) LoadOrders(ctx context.Context, facts []models.OrderFact, items []models.OrderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin orders transaction: %w", err)
	}
	defer tx.Rollback()

	factStmt, err := tx.PrepareContext(ctx, upsertOrderFact)
	if err != nil {
		return fmt.Errorf("prepare fact upsert: %w", err)
	}
	defer factStmt.Close()

	for _, f := range facts {
		ts := f.OrderDateTimeUTC.UTC().Format(timestampLayout)
		if _, err := factStmt.ExecContext(ctx, f.OrderID, f.MobileNumber, ts, f.TotalAmount); err != nil {
			return fmt.Errorf("upsert order fact %s: %w", f.OrderID, err)
		}
	}

	itemStmt, err := tx.PrepareContext(ctx, upsertOrderItem)
	if err != nil {
		return fmt.Errorf("prepare item upsert: %w", err)
	}
	defer itemStmt.Close()

	for _, it := range items {
		if _, err := itemStmt.ExecContext(ctx, it.OrderID, it.SKUID, it.SKUCount); err != nil {
			return fmt.Errorf("upsert order item %s/%s: %w", it.OrderID, it.SKUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit orders: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrderFactsUpserted.Add(float64(len(facts)))
		s.metrics.OrderItemsUpserted.Add(float64(len(items)))
	}

	return nil
}

// RepeatCustomers returns customers with more than one distinct order.
func (s *Store) RepeatCustomers(ctx context.Context) ([]models.RepeatCustomerRow, error) {
	rows, err := s.db.QueryContext(ctx, queryRepeatCustomers)
	if err != nil {
		return nil, fmt.Errorf("query repeat customers: %w", err)
	}
	defer rows.Close()

	var result []models.RepeatCustomerRow

	for rows.Next() {
		var r models.RepeatCustomerRow
		if err := rows.Scan(&r.CustomerID, &r.CustomerName, &r.MobileNumber, &r.OrderCount); err != nil {
			return nil, fmt.Errorf("scan repeat customer: %w", err)
		}

		result = append(result, r)
	}

	return result, rows.Err()
}

// MonthlyTrends returns distinct-order counts and revenue per UTC month.
func (s *Store) MonthlyTrends(ctx context.Context) ([]models.MonthlyTrendRow, error) {
	rows, err := s.db.QueryContext(ctx, queryMonthlyTrends)
	if err != nil {
		return nil, fmt.Errorf("query monthly trends: %w", err)
	}
	defer rows.Close()

	var result []models.MonthlyTrendRow

	for rows.Next() {
		var r models.MonthlyTrendRow
		if err := rows.Scan(&r.OrderMonth, &r.TotalOrders, &r.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan monthly trend: %w", err)
		}

		result = append(result, r)
	}

	return result, rows.Err()
}

// RegionalRevenue returns revenue per customer region, highest first.
// Orders without a matching customer are excluded, as in the in-memory
// backend.
func (s *Store) RegionalRevenue(ctx context.Context) ([]models.RegionalRevenueRow, error) {
	rows, err := s.db.QueryContext(ctx, queryRegionalRevenue)
	if err != nil {
		return nil, fmt.Errorf("query regional revenue: %w", err)
	}
	defer rows.Close()

	var result []models.RegionalRevenueRow

	for rows.Next() {
		var r models.RegionalRevenueRow
		if err := rows.Scan(&r.Region, &r.RegionalRevenue); err != nil {
			return nil, fmt.Errorf("scan regional revenue: %w", err)
		}

		result = append(result, r)
	}

	return result, rows.Err()
}

// TopCustomers returns the top spenders over the trailing window ending
// at now.
func (s *Store) TopCustomers(ctx context.Context, now time.Time) ([]models.TopCustomerRow, error) {
	cutoff := now.UTC().Add(-kpi.Window).Format(timestampLayout)

	rows, err := s.db.QueryContext(ctx, queryTopCustomers, cutoff, kpi.TopCustomersLimit)
	if err != nil {
		return nil, fmt.Errorf("query top customers: %w", err)
	}
	defer rows.Close()

	var result []models.TopCustomerRow

	for rows.Next() {
		var r models.TopCustomerRow
		if err := rows.Scan(&r.CustomerID, &r.CustomerName, &r.MobileNumber, &r.TotalSpend); err != nil {
			return nil, fmt.Errorf("scan top customer: %w", err)
		}

		result = append(result, r)
	}

	return result, rows.Err()
}
