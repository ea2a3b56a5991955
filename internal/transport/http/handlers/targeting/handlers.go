package targetinghandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/catalog"
	"salesdash/internal/domain/targeting"
	"salesdash/internal/transport/http/api"
	"salesdash/internal/transport/http/middleware"
	"salesdash/internal/transport/http/shared"
)

type Handler struct {
	Store *targeting.Store
}

func NewHandler(store *targeting.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermTargetingRead)
	r.Route("/targeting", func(r chi.Router) {
		r.With(read).Get("/allocations", h.handleAllocations)
		r.With(read).Get("/allocations/{employeeID}", h.handleEmployeeAllocation)
		r.With(read).Get("/medical-centers", h.handleMedicalCenters)
	})
}

// handleAllocations computes the automatic per-employee targets for one
// product, scope and year. The result is derived on every call; nothing
// is persisted.
func (h *Handler) handleAllocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := shared.NewValidator()
	v.Required("productId", q.Get("productId"), "productId is required")
	v.Required("scope", q.Get("scope"), "scope is required")
	v.Enum("scope", q.Get("scope"), []string{catalog.ScopeNational, catalog.ScopeTehran}, "must be national or tehran")
	year, _ := v.Year("year", q.Get("year"))
	kind := q.Get("kind")
	if kind != "" && !catalog.ValidKind(kind) {
		v.Add("kind", "unknown territory kind")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	targets, marketUnits, ok := h.loadTargets(w, r, q.Get("scope"), q.Get("productId"), year, kind)
	if !ok {
		return
	}
	api.Success(w, map[string]any{
		"productId":   q.Get("productId"),
		"scope":       q.Get("scope"),
		"year":        year,
		"marketUnits": marketUnits,
		"targets":     targets,
	}, middleware.GetRequestID(r.Context()))
}

// handleEmployeeAllocation returns the single-employee slice of the same
// derivation, including the per-territory breakdown.
func (h *Handler) handleEmployeeAllocation(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	q := r.URL.Query()
	v := shared.NewValidator()
	v.Required("productId", q.Get("productId"), "productId is required")
	v.Required("scope", q.Get("scope"), "scope is required")
	v.Enum("scope", q.Get("scope"), []string{catalog.ScopeNational, catalog.ScopeTehran}, "must be national or tehran")
	year, _ := v.Year("year", q.Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	targets, _, ok := h.loadTargets(w, r, q.Get("scope"), q.Get("productId"), year, "")
	if !ok {
		return
	}
	for _, target := range targets {
		if target.EmployeeID == employeeID {
			api.Success(w, target, middleware.GetRequestID(r.Context()))
			return
		}
	}
	api.Fail(w, http.StatusNotFound, "not_found", "employee has no allocation for this product", middleware.GetRequestID(r.Context()))
}

// handleMedicalCenters is the Tehran monitor view: medical-center
// territories only, against the Tehran market size.
func (h *Handler) handleMedicalCenters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := shared.NewValidator()
	v.Required("productId", q.Get("productId"), "productId is required")
	year, _ := v.Year("year", q.Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	targets, marketUnits, ok := h.loadTargets(w, r, catalog.ScopeTehran, q.Get("productId"), year, catalog.KindMedicalCenter)
	if !ok {
		return
	}
	api.Success(w, map[string]any{
		"productId":   q.Get("productId"),
		"scope":       catalog.ScopeTehran,
		"year":        year,
		"marketUnits": marketUnits,
		"targets":     targets,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) loadTargets(w http.ResponseWriter, r *http.Request, scope, productID string, year int, kind string) ([]targeting.EmployeeAutoTarget, float64, bool) {
	snapshot, err := h.Store.LoadSnapshot(r.Context(), scope, productID, year, kind)
	if errors.Is(err, catalog.ErrInvalidScope) {
		api.Fail(w, http.StatusBadRequest, "invalid_scope", "unknown market scope", middleware.GetRequestID(r.Context()))
		return nil, 0, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "allocation_failed", "failed to load allocation inputs", middleware.GetRequestID(r.Context()))
		return nil, 0, false
	}
	targets := targeting.Allocate(snapshot.Employees, snapshot.Territories, snapshot.Product, snapshot.MarketUnits)
	return targets, snapshot.MarketUnits, true
}
