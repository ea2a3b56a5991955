package kpi

// Config describes one KPI type in the global registry. MaxPoints is
// negative for penalty-style KPIs.
type Config struct {
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	MaxPoints float64 `json:"maxPoints"`
	Formula   string  `json:"formula"`
}

// KPI is a single tracked indicator owned by one employee. Scores is keyed
// by period key ("Month-Year"); a missing entry means "not recorded", which
// is distinct from a recorded zero.
type KPI struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employeeId"`
	Type       string             `json:"type"`
	Target     *float64           `json:"target,omitempty"`
	Scores     map[string]float64 `json:"scores"`
}

// ScoreRow is one computed line of the per-period score matrix.
type ScoreRow struct {
	EmployeeID   string             `json:"employeeId"`
	EmployeeName string             `json:"employeeName"`
	Scores       map[string]float64 `json:"scores"`
	FinalScore   float64            `json:"finalScore"`
}
