package targeting

type MonthlyTarget struct {
	Quantity float64 `json:"quantity"`
	Value    float64 `json:"value"`
}

type SeasonalTarget struct {
	Quantity float64                  `json:"quantity"`
	Value    float64                  `json:"value"`
	Months   map[string]MonthlyTarget `json:"months"`
}

// AnnualTarget is the timephased annual → seasonal → monthly breakdown.
// Quantities are internally consistent bottom-up: each season is the sum of
// its months, the annual total the sum of its seasons, and value equals
// quantity times unit price at every level.
type AnnualTarget struct {
	Quantity float64                   `json:"quantity"`
	Value    float64                   `json:"value"`
	Seasons  map[string]SeasonalTarget `json:"seasons"`
}

// TerritoryDetail is one territory's contribution to an employee's target.
// BaseQuantity is the raw allocation before any timephase rounding.
type TerritoryDetail struct {
	TerritoryID   string       `json:"territoryId"`
	TerritoryName string       `json:"territoryName"`
	Kind          string       `json:"kind"`
	Share         float64      `json:"share"`
	BaseQuantity  float64      `json:"baseQuantity"`
	Annual        AnnualTarget `json:"annual"`
}

// EmployeeAutoTarget is a derived result, recomputed whole on every input
// change and never mutated in place.
type EmployeeAutoTarget struct {
	EmployeeID            string            `json:"employeeId"`
	EmployeeName          string            `json:"employeeName"`
	TargetAcquisitionRate float64           `json:"targetAcquisitionRate"`
	TotalShare            float64           `json:"totalShare"`
	BaseQuantity          float64           `json:"baseQuantity"`
	BaseValue             float64           `json:"baseValue"`
	Annual                AnnualTarget      `json:"annual"`
	Territories           []TerritoryDetail `json:"territories"`
}
