package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"salesdash/internal/domain/period"
)

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, title, department, target_acquisition_rate
    FROM employees
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Title, &emp.Department, &emp.TargetAcquisitionRate); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, title, department, target_acquisition_rate
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.Name, &emp.Title, &emp.Department, &emp.TargetAcquisitionRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	notes, err := s.employeeNotes(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	emp.Notes = notes
	return &emp, nil
}

// ResolveAcquisitionRate maps an optional request rate to the stored value.
// A nil rate means the caller left the field out and gets the default; an
// explicit 0 is a legal rate and is kept as given.
func ResolveAcquisitionRate(rate *float64) (float64, error) {
	if rate == nil {
		return DefaultAcquisitionRate, nil
	}
	if *rate < 0 {
		return 0, ErrInvalidRate
	}
	return *rate, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee, rate *float64) (string, error) {
	resolved, err := ResolveAcquisitionRate(rate)
	if err != nil {
		return "", err
	}
	emp.TargetAcquisitionRate = resolved
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, title, department, target_acquisition_rate)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, emp.Name, emp.Title, emp.Department, emp.TargetAcquisitionRate).Scan(&id)
	return id, err
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	if emp.TargetAcquisitionRate < 0 {
		return ErrInvalidRate
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $2, title = $3, department = $4, target_acquisition_rate = $5
    WHERE id = $1
  `, emp.ID, emp.Name, emp.Title, emp.Department, emp.TargetAcquisitionRate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEmployee removes the employee; the schema cascades take their KPIs,
// scores, notes and ledger rows with them and null out territory
// assignments in the same statement.
func (s *Store) DeleteEmployee(ctx context.Context, employeeID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpsertEmployeeNote(ctx context.Context, employeeID string, p period.Period, note string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_notes (employee_id, year, month, note)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (employee_id, year, month) DO UPDATE SET note = EXCLUDED.note
  `, employeeID, p.Year, p.Month, note)
	return err
}

func (s *Store) DeleteEmployeeNote(ctx context.Context, employeeID string, p period.Period) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM employee_notes WHERE employee_id = $1 AND year = $2 AND month = $3
  `, employeeID, p.Year, p.Month)
	return err
}

func (s *Store) employeeNotes(ctx context.Context, employeeID string) (map[string]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT year, month, note FROM employee_notes WHERE employee_id = $1
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := map[string]string{}
	for rows.Next() {
		var year int
		var month, note string
		if err := rows.Scan(&year, &month, &note); err != nil {
			return nil, err
		}
		notes[period.New(month, year).Key()] = note
	}
	return notes, rows.Err()
}
