package targeting

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdash/internal/domain/catalog"
)

// Snapshot is one consistent read of everything Allocate consumes.
type Snapshot struct {
	Employees   []catalog.Employee
	Territories []catalog.Territory
	Product     *catalog.Product
	MarketUnits float64
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// LoadSnapshot reads employees, territories, the product and the market size
// inside a single repeatable-read transaction so the allocation never sees a
// torn write. kind narrows the territory set ("" means all kinds). A missing
// product yields a nil Product, which Allocate treats as a short-circuit.
func (s *Store) LoadSnapshot(ctx context.Context, scope, productID string, year int, kind string) (*Snapshot, error) {
	if !catalog.ValidScope(scope) {
		return nil, catalog.ErrInvalidScope
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	snap := &Snapshot{}

	rows, err := tx.Query(ctx, `
    SELECT id, name, title, department, target_acquisition_rate FROM employees ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var emp catalog.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Title, &emp.Department, &emp.TargetAcquisitionRate); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Employees = append(snap.Employees, emp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query := `SELECT id, kind, name, assigned_to FROM territories`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	rows, err = tx.Query(ctx, query+` ORDER BY name`, args...)
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	for rows.Next() {
		var t catalog.Territory
		if err := rows.Scan(&t.ID, &t.Kind, &t.Name, &t.AssignedTo); err != nil {
			rows.Close()
			return nil, err
		}
		t.MarketShare = map[string]float64{}
		index[t.ID] = len(snap.Territories)
		snap.Territories = append(snap.Territories, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `
    SELECT territory_id, share FROM territory_shares WHERE product_id = $1
  `, productID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var territoryID string
		var share float64
		if err := rows.Scan(&territoryID, &share); err != nil {
			rows.Close()
			return nil, err
		}
		if i, ok := index[territoryID]; ok {
			snap.Territories[i].MarketShare[productID] = share
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var product catalog.Product
	err = tx.QueryRow(ctx, `SELECT id, name, price FROM products WHERE id = $1`, productID).
		Scan(&product.ID, &product.Name, &product.Price)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		snap.Product = &product
	}

	err = tx.QueryRow(ctx, `
    SELECT units FROM market_sizes WHERE scope = $1 AND product_id = $2 AND year = $3
  `, scope, productID, year).Scan(&snap.MarketUnits)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}
