package kpi

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"salesdash/internal/domain/period"
)

func (s *Store) ListConfigs(ctx context.Context) (map[string]Config, error) {
	rows, err := s.DB.Query(ctx, `SELECT type, name, max_points, formula FROM kpi_configs ORDER BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := map[string]Config{}
	for rows.Next() {
		var cfg Config
		if err := rows.Scan(&cfg.Type, &cfg.Name, &cfg.MaxPoints, &cfg.Formula); err != nil {
			return nil, err
		}
		configs[cfg.Type] = cfg
	}
	return configs, rows.Err()
}

func (s *Store) UpsertConfig(ctx context.Context, cfg Config) error {
	if !ValidFormula(cfg.Formula) {
		return ErrUnknownFormula
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO kpi_configs (type, name, max_points, formula)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (type) DO UPDATE SET name = EXCLUDED.name, max_points = EXCLUDED.max_points, formula = EXCLUDED.formula
  `, cfg.Type, cfg.Name, cfg.MaxPoints, cfg.Formula)
	return err
}

// DeleteConfig removes a config and every employee's KPIs of that type in a
// single transaction so no KPI is ever left pointing at a missing config.
func (s *Store) DeleteConfig(ctx context.Context, kpiType string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM kpis WHERE type = $1`, kpiType); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM kpi_configs WHERE type = $1`, kpiType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) CreateKPI(ctx context.Context, employeeID, kpiType string, target *float64) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO kpis (employee_id, type, target) VALUES ($1,$2,$3) RETURNING id
  `, employeeID, kpiType, target).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return "", ErrDuplicateKPI
	}
	return id, err
}

func (s *Store) UpdateKPITarget(ctx context.Context, kpiID string, target *float64) error {
	tag, err := s.DB.Exec(ctx, `UPDATE kpis SET target = $2 WHERE id = $1`, kpiID, target)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteKPI(ctx context.Context, kpiID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM kpis WHERE id = $1`, kpiID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpsertScore(ctx context.Context, kpiID string, p period.Period, value float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO kpi_scores (kpi_id, year, month, value)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (kpi_id, year, month) DO UPDATE SET value = EXCLUDED.value
  `, kpiID, p.Year, p.Month, value)
	return err
}

// DeleteScore removes one recorded period entirely; the scoring engine
// treats absence as "not recorded", not as zero.
func (s *Store) DeleteScore(ctx context.Context, kpiID string, p period.Period) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM kpi_scores WHERE kpi_id = $1 AND year = $2 AND month = $3
  `, kpiID, p.Year, p.Month)
	return err
}

// LoadEmployeeKPIs returns an employee's KPIs with their full score maps.
func (s *Store) LoadEmployeeKPIs(ctx context.Context, employeeID string) ([]KPI, error) {
	grouped, err := s.loadKPIs(ctx, `WHERE k.employee_id = $1`, employeeID)
	if err != nil {
		return nil, err
	}
	return grouped[employeeID], nil
}

// LoadAllKPIs returns every employee's KPIs keyed by employee ID.
func (s *Store) LoadAllKPIs(ctx context.Context) (map[string][]KPI, error) {
	return s.loadKPIs(ctx, "")
}

func (s *Store) loadKPIs(ctx context.Context, where string, args ...any) (map[string][]KPI, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT k.id, k.employee_id, k.type, k.target FROM kpis k `+where+` ORDER BY k.type
  `, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []KPI
	for rows.Next() {
		var k KPI
		if err := rows.Scan(&k.ID, &k.EmployeeID, &k.Type, &k.Target); err != nil {
			return nil, err
		}
		k.Scores = map[string]float64{}
		all = append(all, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*KPI, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}

	scoreRows, err := s.DB.Query(ctx, `
    SELECT s.kpi_id, s.year, s.month, s.value
    FROM kpi_scores s JOIN kpis k ON k.id = s.kpi_id `+where+`
  `, args...)
	if err != nil {
		return nil, err
	}
	defer scoreRows.Close()

	for scoreRows.Next() {
		var kpiID, month string
		var year int
		var value float64
		if err := scoreRows.Scan(&kpiID, &year, &month, &value); err != nil {
			return nil, err
		}
		if k, ok := byID[kpiID]; ok {
			k.Scores[period.New(month, year).Key()] = value
		}
	}
	if err := scoreRows.Err(); err != nil {
		return nil, err
	}

	grouped := map[string][]KPI{}
	for _, k := range all {
		grouped[k.EmployeeID] = append(grouped[k.EmployeeID], k)
	}
	return grouped, nil
}
