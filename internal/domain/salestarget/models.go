package salestarget

// Entry is one manually entered target/actual pair for an employee, product
// and month. Actual is nil until somebody records it; nil is distinct from a
// recorded zero.
type Entry struct {
	EmployeeID string   `json:"employeeId"`
	ProductID  string   `json:"productId"`
	Year       int      `json:"year"`
	Month      string   `json:"month"`
	Target     float64  `json:"target"`
	Actual     *float64 `json:"actual"`
}

// MonthStatus is the computed carry-over view of one month in the manual
// sales-targeting table.
type MonthStatus struct {
	Month          string   `json:"month"`
	Target         float64  `json:"target"`
	Actual         *float64 `json:"actual"`
	CarryOver      float64  `json:"carryOver"`
	TotalTarget    float64  `json:"totalTarget"`
	Shortfall      float64  `json:"shortfall"`
	AchievementPct float64  `json:"achievementPct"`
}
