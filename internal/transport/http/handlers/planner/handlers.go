package plannerhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/audit"
	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/planner"
	"salesdash/internal/transport/http/api"
	"salesdash/internal/transport/http/middleware"
)

type Handler struct {
	Store *planner.Store
	Audit *audit.Service
}

func NewHandler(store *planner.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermPlannerRead)
	write := middleware.RequirePermission(auth.PermPlannerWrite)

	r.Route("/planner", func(r chi.Router) {
		r.With(read).Post("/project", h.handleProject)
		r.Route("/scenarios", func(r chi.Router) {
			r.With(read).Get("/", h.handleListScenarios)
			r.With(write).Post("/", h.handleSaveScenario)
			r.Route("/{scenarioID}", func(r chi.Router) {
				r.With(read).Get("/", h.handleGetScenario)
				r.With(read).Get("/projection", h.handleScenarioProjection)
				r.With(write).Put("/", h.handleUpdateScenario)
				r.With(write).Delete("/", h.handleDeleteScenario)
			})
		})
	})
}

type projectRequest struct {
	Unknown planner.Unknown    `json:"unknown"`
	Inputs  planner.Inputs     `json:"inputs"`
	Config  planner.RateConfig `json:"config"`
}

func validUnknown(u planner.Unknown) bool {
	return u == planner.UnknownSalespeople || u == planner.UnknownCustomers
}

// handleProject runs the capacity model without persisting anything.
func (h *Handler) handleProject(w http.ResponseWriter, r *http.Request) {
	var payload projectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !validUnknown(payload.Unknown) {
		api.Fail(w, http.StatusBadRequest, "invalid_unknown", "unknown must be numSalespeople or targetCustomers", middleware.GetRequestID(r.Context()))
		return
	}

	metrics := planner.Project(payload.Inputs, payload.Unknown, payload.Config)
	api.Success(w, metricsPayload(metrics), middleware.GetRequestID(r.Context()))
}

// metricsPayload mirrors planner.Metrics field for field. The model's
// infinity sentinels are legal outputs but encoding/json rejects non-finite
// floats, so they go out as the string "Infinity" (NaN, reachable through
// infinity arithmetic, as null).
func metricsPayload(m planner.Metrics) map[string]any {
	return map[string]any{
		"salespeople":                   jsonNumber(m.Salespeople),
		"customers":                     jsonNumber(m.Customers),
		"leadsPerCustomer":              jsonNumber(m.LeadsPerCustomer),
		"oppsPerCustomer":               jsonNumber(m.OppsPerCustomer),
		"timePerNewCustomer":            jsonNumber(m.TimePerNewCustomer),
		"availableTimePerPersonPerYear": jsonNumber(m.AvailableTimePerPersonPerYear),
		"revenue":                       jsonNumber(m.Revenue),
		"cost":                          jsonNumber(m.Cost),
		"cac":                           jsonNumber(m.CAC),
		"roi":                           jsonNumber(m.ROI),
		"breakEvenDeals":                jsonNumber(m.BreakEvenDeals),
		"marketSharePct":                jsonNumber(m.MarketSharePct),
	}
}

func jsonNumber(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return nil
	default:
		return v
	}
}

func (h *Handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scenario_list_failed", "failed to list scenarios", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, scenarios, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.Store.GetScenario(r.Context(), chi.URLParam(r, "scenarioID"))
	if errors.Is(err, planner.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "scenario not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scenario_get_failed", "failed to load scenario", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, scenario, middleware.GetRequestID(r.Context()))
}

// handleScenarioProjection loads a saved scenario and runs the model on it.
func (h *Handler) handleScenarioProjection(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.Store.GetScenario(r.Context(), chi.URLParam(r, "scenarioID"))
	if errors.Is(err, planner.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "scenario not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scenario_get_failed", "failed to load scenario", middleware.GetRequestID(r.Context()))
		return
	}

	metrics := planner.Project(scenario.Inputs, scenario.Unknown, scenario.Config)
	api.Success(w, map[string]any{"scenario": scenario, "metrics": metricsPayload(metrics)}, middleware.GetRequestID(r.Context()))
}

type scenarioRequest struct {
	Name    string             `json:"name"`
	Unknown planner.Unknown    `json:"unknown"`
	Inputs  planner.Inputs     `json:"inputs"`
	Config  planner.RateConfig `json:"config"`
}

func (h *Handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var payload scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	if !validUnknown(payload.Unknown) {
		api.Fail(w, http.StatusBadRequest, "invalid_unknown", "unknown must be numSalespeople or targetCustomers", middleware.GetRequestID(r.Context()))
		return
	}

	scenario := planner.Scenario{Name: strings.TrimSpace(payload.Name), Unknown: payload.Unknown, Inputs: payload.Inputs, Config: payload.Config}
	id, err := h.Store.SaveScenario(r.Context(), scenario)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scenario_save_failed", "failed to save scenario", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "planner.scenario.create", id, scenario)
	scenario.ID = id
	api.Created(w, scenario, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	var payload scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if !validUnknown(payload.Unknown) {
		api.Fail(w, http.StatusBadRequest, "invalid_unknown", "unknown must be numSalespeople or targetCustomers", middleware.GetRequestID(r.Context()))
		return
	}

	scenario := planner.Scenario{
		ID:      chi.URLParam(r, "scenarioID"),
		Name:    strings.TrimSpace(payload.Name),
		Unknown: payload.Unknown,
		Inputs:  payload.Inputs,
		Config:  payload.Config,
	}
	if err := h.Store.UpdateScenario(r.Context(), scenario); err != nil {
		if errors.Is(err, planner.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "scenario not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "scenario_save_failed", "failed to save scenario", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "planner.scenario.update", scenario.ID, scenario)
	api.Success(w, scenario, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "scenarioID")
	err := h.Store.DeleteScenario(r.Context(), scenarioID)
	if errors.Is(err, planner.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "scenario not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scenario_delete_failed", "failed to delete scenario", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "planner.scenario.delete", scenarioID, nil)
	api.NoContent(w)
}

func (h *Handler) record(r *http.Request, action, entityID string, detail any) {
	if h.Audit == nil {
		return
	}
	actorID := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), actorID, action, "planner_scenario", entityID, middleware.GetRequestID(r.Context()), detail); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
