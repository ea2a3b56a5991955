package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) UpsertMarketSize(ctx context.Context, m MarketSize) error {
	if !ValidScope(m.Scope) {
		return ErrInvalidScope
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO market_sizes (scope, product_id, year, units)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (scope, product_id, year) DO UPDATE SET units = EXCLUDED.units
  `, m.Scope, m.ProductID, m.Year, m.Units)
	return err
}

// MarketUnits returns the market size in units for one scope/product/year,
// zero when nothing is recorded.
func (s *Store) MarketUnits(ctx context.Context, scope, productID string, year int) (float64, error) {
	if !ValidScope(scope) {
		return 0, ErrInvalidScope
	}
	var units float64
	err := s.DB.QueryRow(ctx, `
    SELECT units FROM market_sizes WHERE scope = $1 AND product_id = $2 AND year = $3
  `, scope, productID, year).Scan(&units)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return units, nil
}

func (s *Store) ListMarketSizes(ctx context.Context, scope string) ([]MarketSize, error) {
	if !ValidScope(scope) {
		return nil, ErrInvalidScope
	}
	rows, err := s.DB.Query(ctx, `
    SELECT scope, product_id, year, units
    FROM market_sizes
    WHERE scope = $1
    ORDER BY product_id, year
  `, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []MarketSize
	for rows.Next() {
		var m MarketSize
		if err := rows.Scan(&m.Scope, &m.ProductID, &m.Year, &m.Units); err != nil {
			return nil, err
		}
		sizes = append(sizes, m)
	}
	return sizes, rows.Err()
}

func (s *Store) DeleteMarketSize(ctx context.Context, scope, productID string, year int) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM market_sizes WHERE scope = $1 AND product_id = $2 AND year = $3
  `, scope, productID, year)
	return err
}
