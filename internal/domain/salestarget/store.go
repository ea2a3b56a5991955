package salestarget

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"salesdash/internal/domain/period"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// UpsertTarget whole-field-replaces the month's target, leaving any recorded
// actual in place.
func (s *Store) UpsertTarget(ctx context.Context, employeeID, productID string, p period.Period, target float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sales_targets (employee_id, product_id, year, month, target)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id, product_id, year, month) DO UPDATE SET target = EXCLUDED.target
  `, employeeID, productID, p.Year, p.Month, target)
	return err
}

// RecordActual sets or clears the recorded actual; a nil value means "not
// yet recorded".
func (s *Store) RecordActual(ctx context.Context, employeeID, productID string, p period.Period, value *float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE sales_targets SET actual = $5
    WHERE employee_id = $1 AND product_id = $2 AND year = $3 AND month = $4
  `, employeeID, productID, p.Year, p.Month, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, employeeID, productID string, p period.Period) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM sales_targets
    WHERE employee_id = $1 AND product_id = $2 AND year = $3 AND month = $4
  `, employeeID, productID, p.Year, p.Month)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// YearEntries loads one employee/product/year slice of the ledger in
// canonical month order, the exact input shape the carry-over walk wants.
func (s *Store) YearEntries(ctx context.Context, employeeID, productID string, year int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, product_id, year, month, target, actual
    FROM sales_targets
    WHERE employee_id = $1 AND product_id = $2 AND year = $3
  `, employeeID, productID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.EmployeeID, &e.ProductID, &e.Year, &e.Month, &e.Target, &e.Actual); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return period.MonthIndex(entries[i].Month) < period.MonthIndex(entries[j].Month)
	})
	return entries, nil
}
