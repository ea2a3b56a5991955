package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ListTerritories returns territories of one kind (or all kinds when kind is
// empty) with their full share maps loaded.
func (s *Store) ListTerritories(ctx context.Context, kind string) ([]Territory, error) {
	query := `SELECT id, kind, name, assigned_to FROM territories`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY name`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var territories []Territory
	index := map[string]int{}
	for rows.Next() {
		var t Territory
		if err := rows.Scan(&t.ID, &t.Kind, &t.Name, &t.AssignedTo); err != nil {
			return nil, err
		}
		t.MarketShare = map[string]float64{}
		index[t.ID] = len(territories)
		territories = append(territories, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shareRows, err := s.DB.Query(ctx, `SELECT territory_id, product_id, share FROM territory_shares`)
	if err != nil {
		return nil, err
	}
	defer shareRows.Close()

	for shareRows.Next() {
		var territoryID, productID string
		var share float64
		if err := shareRows.Scan(&territoryID, &productID, &share); err != nil {
			return nil, err
		}
		if i, ok := index[territoryID]; ok {
			territories[i].MarketShare[productID] = share
		}
	}
	return territories, shareRows.Err()
}

func (s *Store) GetTerritory(ctx context.Context, territoryID string) (*Territory, error) {
	var t Territory
	err := s.DB.QueryRow(ctx, `
    SELECT id, kind, name, assigned_to FROM territories WHERE id = $1
  `, territoryID).Scan(&t.ID, &t.Kind, &t.Name, &t.AssignedTo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.MarketShare = map[string]float64{}
	rows, err := s.DB.Query(ctx, `
    SELECT product_id, share FROM territory_shares WHERE territory_id = $1
  `, territoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var productID string
		var share float64
		if err := rows.Scan(&productID, &share); err != nil {
			return nil, err
		}
		t.MarketShare[productID] = share
	}
	return &t, rows.Err()
}

func (s *Store) CreateTerritory(ctx context.Context, t Territory) (string, error) {
	if !ValidKind(t.Kind) {
		return "", ErrInvalidKind
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO territories (kind, name, assigned_to) VALUES ($1,$2,$3) RETURNING id
  `, t.Kind, t.Name, t.AssignedTo).Scan(&id)
	return id, err
}

func (s *Store) UpdateTerritory(ctx context.Context, t Territory) error {
	if !ValidKind(t.Kind) {
		return ErrInvalidKind
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE territories SET kind = $2, name = $3 WHERE id = $1
  `, t.ID, t.Kind, t.Name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignTerritory sets or clears the owning employee. A nil employeeID
// unassigns.
func (s *Store) AssignTerritory(ctx context.Context, territoryID string, employeeID *string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE territories SET assigned_to = $2 WHERE id = $1
  `, territoryID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpsertTerritoryShare(ctx context.Context, territoryID, productID string, share float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO territory_shares (territory_id, product_id, share)
    VALUES ($1,$2,$3)
    ON CONFLICT (territory_id, product_id) DO UPDATE SET share = EXCLUDED.share
  `, territoryID, productID, share)
	return err
}

func (s *Store) DeleteTerritory(ctx context.Context, territoryID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM territories WHERE id = $1`, territoryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
