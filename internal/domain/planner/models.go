package planner

// Unknown selects which of the two coupled inputs the projection solves for.
type Unknown string

const (
	UnknownSalespeople Unknown = "numSalespeople"
	UnknownCustomers   Unknown = "targetCustomers"
)

// Inputs carries the caller-supplied side of the model. Whichever field
// Unknown names is ignored and computed instead.
type Inputs struct {
	NumSalespeople  float64 `json:"numSalespeople"`
	TargetCustomers float64 `json:"targetCustomers"`
	DealSize        float64 `json:"dealSize"`
	MarketSize      float64 `json:"marketSize"`
}

// RateConfig is the funnel and cost structure. Rates are fractions (0..1),
// times are hours, TotalTimePerPerson and ExistingClientTime are hours per
// month, Salary is per month.
type RateConfig struct {
	LeadToOppRate      float64 `json:"leadToOppRate"`
	OppToCustomerRate  float64 `json:"oppToCustomerRate"`
	LeadToOppTime      float64 `json:"leadToOppTime"`
	OppToCustomerTime  float64 `json:"oppToCustomerTime"`
	TotalTimePerPerson float64 `json:"totalTimePerPerson"`
	ExistingClientTime float64 `json:"existingClientTime"`
	Salary             float64 `json:"salary"`
	CommissionRate     float64 `json:"commissionRate"`
}

// Metrics is the full projection. Degenerate inputs yield 0 or +Inf per
// field, never an error.
type Metrics struct {
	Salespeople float64 `json:"salespeople"`
	Customers   float64 `json:"customers"`

	LeadsPerCustomer              float64 `json:"leadsPerCustomer"`
	OppsPerCustomer               float64 `json:"oppsPerCustomer"`
	TimePerNewCustomer            float64 `json:"timePerNewCustomer"`
	AvailableTimePerPersonPerYear float64 `json:"availableTimePerPersonPerYear"`

	Revenue        float64 `json:"revenue"`
	Cost           float64 `json:"cost"`
	CAC            float64 `json:"cac"`
	ROI            float64 `json:"roi"`
	BreakEvenDeals float64 `json:"breakEvenDeals"`
	MarketSharePct float64 `json:"marketSharePct"`
}

// Scenario is a saved planner configuration for the planner view.
type Scenario struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Unknown Unknown    `json:"unknown"`
	Inputs  Inputs     `json:"inputs"`
	Config  RateConfig `json:"config"`
}
