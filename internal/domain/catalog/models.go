package catalog

const (
	KindProvince      = "province"
	KindMedicalCenter = "medical_center"

	ScopeNational = "national"
	ScopeTehran   = "tehran"

	// DefaultAcquisitionRate is the percent of a territory's potential a new
	// employee is expected to capture until someone sets a real figure.
	DefaultAcquisitionRate = 10.0
)

type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Department string `json:"department"`
	// TargetAcquisitionRate is a percent, 0..100 scale, no enforced upper
	// bound.
	TargetAcquisitionRate float64 `json:"targetAcquisitionRate"`
	// Notes is keyed by period key ("Month-Year").
	Notes map[string]string `json:"notes,omitempty"`
}

type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Territory is a province or a medical center; both carry the same
// capability set and the allocation engine never branches on Kind.
type Territory struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
	// AssignedTo is the owning employee's ID; nil means unassigned. At most
	// one employee per territory.
	AssignedTo *string `json:"assignedTo"`
	// MarketShare maps product ID to a percent share, 0..100 scale.
	MarketShare map[string]float64 `json:"marketShare"`
}

type MarketSize struct {
	Scope     string  `json:"scope"`
	ProductID string  `json:"productId"`
	Year      int     `json:"year"`
	Units     float64 `json:"units"`
}

func ValidKind(kind string) bool {
	return kind == KindProvince || kind == KindMedicalCenter
}

func ValidScope(scope string) bool {
	return scope == ScopeNational || scope == ScopeTehran
}
