package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.DB.Query(ctx, `SELECT id, name, price FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var p Product
	err := s.DB.QueryRow(ctx, `SELECT id, name, price FROM products WHERE id = $1`, productID).
		Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p Product) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO products (name, price) VALUES ($1,$2) RETURNING id
  `, p.Name, p.Price).Scan(&id)
	return id, err
}

func (s *Store) UpdateProduct(ctx context.Context, p Product) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE products SET name = $2, price = $3 WHERE id = $1
  `, p.ID, p.Name, p.Price)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the product; shares, market sizes and ledger rows
// referencing it go with it through the schema cascades.
func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
