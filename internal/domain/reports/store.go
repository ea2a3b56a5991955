package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) EmployeeCount(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count)
	return count, err
}

func (s *Store) ProductCount(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM products").Scan(&count)
	return count, err
}

func (s *Store) TerritoryCounts(ctx context.Context) (total, assigned int, err error) {
	err = s.DB.QueryRow(ctx, "SELECT COUNT(1), COUNT(assigned_to) FROM territories").Scan(&total, &assigned)
	return total, assigned, err
}
