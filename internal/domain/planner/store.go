package planner

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListScenarios(ctx context.Context) ([]Scenario, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, unknown, inputs_json, config_json FROM planner_scenarios ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}

func (s *Store) GetScenario(ctx context.Context, id string) (*Scenario, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, name, unknown, inputs_json, config_json FROM planner_scenarios WHERE id = $1
  `, id)
	sc, err := scanScenario(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Store) SaveScenario(ctx context.Context, sc Scenario) (string, error) {
	inputsJSON, err := json.Marshal(sc.Inputs)
	if err != nil {
		return "", err
	}
	configJSON, err := json.Marshal(sc.Config)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO planner_scenarios (name, unknown, inputs_json, config_json)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, sc.Name, string(sc.Unknown), inputsJSON, configJSON).Scan(&id)
	return id, err
}

func (s *Store) UpdateScenario(ctx context.Context, sc Scenario) error {
	inputsJSON, err := json.Marshal(sc.Inputs)
	if err != nil {
		return err
	}
	configJSON, err := json.Marshal(sc.Config)
	if err != nil {
		return err
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE planner_scenarios
    SET name = $1, unknown = $2, inputs_json = $3, config_json = $4
    WHERE id = $5
  `, sc.Name, string(sc.Unknown), inputsJSON, configJSON, sc.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteScenario(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM planner_scenarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanScenario(row pgx.Row) (Scenario, error) {
	var sc Scenario
	var unknown string
	var inputsJSON, configJSON []byte
	if err := row.Scan(&sc.ID, &sc.Name, &unknown, &inputsJSON, &configJSON); err != nil {
		return Scenario{}, err
	}
	sc.Unknown = Unknown(unknown)
	if err := json.Unmarshal(inputsJSON, &sc.Inputs); err != nil {
		return Scenario{}, err
	}
	if err := json.Unmarshal(configJSON, &sc.Config); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}
