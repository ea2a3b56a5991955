package kpihandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/audit"
	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/kpi"
	"salesdash/internal/domain/period"
	"salesdash/internal/transport/http/api"
	"salesdash/internal/transport/http/middleware"
	"salesdash/internal/transport/http/shared"
)

type Handler struct {
	Store *kpi.Store
	Audit *audit.Service
}

func NewHandler(store *kpi.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermKPIRead)
	write := middleware.RequirePermission(auth.PermKPIWrite)
	configure := middleware.RequirePermission(auth.PermKPIConfigure)

	r.Route("/kpi/configs", func(r chi.Router) {
		r.With(read).Get("/", h.handleListConfigs)
		r.With(configure).Put("/{kpiType}", h.handleUpsertConfig)
		r.With(configure).Delete("/{kpiType}", h.handleDeleteConfig)
	})

	r.Route("/kpis", func(r chi.Router) {
		r.With(write).Post("/", h.handleCreateKPI)
		r.Route("/{kpiID}", func(r chi.Router) {
			r.With(write).Put("/target", h.handleUpdateTarget)
			r.With(write).Delete("/", h.handleDeleteKPI)
			r.With(write).Put("/scores/{periodKey}", h.handleUpsertScore)
			r.With(write).Delete("/scores/{periodKey}", h.handleDeleteScore)
		})
	})

	r.With(read).Get("/employees/{employeeID}/kpis", h.handleEmployeeKPIs)
	r.With(read).Get("/employees/{employeeID}/score", h.handleEmployeeScore)
}

func (h *Handler) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.Store.ListConfigs(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "config_list_failed", "failed to list kpi configs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, configs, middleware.GetRequestID(r.Context()))
}

type configRequest struct {
	Name      string  `json:"name"`
	MaxPoints float64 `json:"maxPoints"`
	Formula   string  `json:"formula"`
}

func (h *Handler) handleUpsertConfig(w http.ResponseWriter, r *http.Request) {
	var payload configRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	kpiType := strings.TrimSpace(chi.URLParam(r, "kpiType"))
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("formula", payload.Formula, []string{kpi.FormulaGoalAchievement, kpi.FormulaDirectPenalty, kpi.FormulaConversionFromLeads}, "unknown scoring formula")
	v.Required("formula", payload.Formula, "formula is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	cfg := kpi.Config{Type: kpiType, Name: strings.TrimSpace(payload.Name), MaxPoints: payload.MaxPoints, Formula: payload.Formula}
	if err := h.Store.UpsertConfig(r.Context(), cfg); err != nil {
		if errors.Is(err, kpi.ErrUnknownFormula) {
			api.Fail(w, http.StatusBadRequest, "invalid_formula", "unknown scoring formula", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "config_save_failed", "failed to save kpi config", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "kpi.config.upsert", "kpi_config", kpiType, cfg)
	api.Success(w, cfg, middleware.GetRequestID(r.Context()))
}

// handleDeleteConfig removes a KPI type from the registry together with
// every employee KPI of that type.
func (h *Handler) handleDeleteConfig(w http.ResponseWriter, r *http.Request) {
	kpiType := chi.URLParam(r, "kpiType")
	err := h.Store.DeleteConfig(r.Context(), kpiType)
	if errors.Is(err, kpi.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "kpi config not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "config_delete_failed", "failed to delete kpi config", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "kpi.config.delete", "kpi_config", kpiType, nil)
	api.NoContent(w)
}

type createKPIRequest struct {
	EmployeeID string   `json:"employeeId"`
	Type       string   `json:"type"`
	Target     *float64 `json:"target"`
}

func (h *Handler) handleCreateKPI(w http.ResponseWriter, r *http.Request) {
	var payload createKPIRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("type", payload.Type, "type is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateKPI(r.Context(), payload.EmployeeID, payload.Type, payload.Target)
	switch {
	case errors.Is(err, kpi.ErrDuplicateKPI):
		api.Fail(w, http.StatusConflict, "duplicate_kpi", err.Error(), middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, kpi.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee or kpi type not found", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "kpi_create_failed", "failed to create kpi", middleware.GetRequestID(r.Context()))
		return
	}

	h.record(r, "kpi.create", "kpi", id, payload)
	api.Created(w, map[string]any{"id": id, "employeeId": payload.EmployeeID, "type": payload.Type, "target": payload.Target}, middleware.GetRequestID(r.Context()))
}

type targetRequest struct {
	Target *float64 `json:"target"`
}

func (h *Handler) handleUpdateTarget(w http.ResponseWriter, r *http.Request) {
	var payload targetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	kpiID := chi.URLParam(r, "kpiID")
	err := h.Store.UpdateKPITarget(r.Context(), kpiID, payload.Target)
	if errors.Is(err, kpi.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "kpi not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "kpi_update_failed", "failed to update kpi target", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "kpi.target.update", "kpi", kpiID, payload)
	api.Success(w, map[string]any{"id": kpiID, "target": payload.Target}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteKPI(w http.ResponseWriter, r *http.Request) {
	kpiID := chi.URLParam(r, "kpiID")
	err := h.Store.DeleteKPI(r.Context(), kpiID)
	if errors.Is(err, kpi.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "kpi not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "kpi_delete_failed", "failed to delete kpi", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "kpi.delete", "kpi", kpiID, nil)
	api.NoContent(w)
}

type scoreRequest struct {
	Value float64 `json:"value"`
}

func (h *Handler) handleUpsertScore(w http.ResponseWriter, r *http.Request) {
	p, err := period.ParseKey(chi.URLParam(r, "periodKey"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like Month-Year", middleware.GetRequestID(r.Context()))
		return
	}
	var payload scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	kpiID := chi.URLParam(r, "kpiID")
	err = h.Store.UpsertScore(r.Context(), kpiID, p, payload.Value)
	if errors.Is(err, kpi.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "kpi not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_save_failed", "failed to save score", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "kpi.score.upsert", "kpi", kpiID, map[string]any{"period": p.Key(), "value": payload.Value})
	api.Success(w, map[string]any{"id": kpiID, "period": p.Key(), "value": payload.Value}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteScore(w http.ResponseWriter, r *http.Request) {
	p, err := period.ParseKey(chi.URLParam(r, "periodKey"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like Month-Year", middleware.GetRequestID(r.Context()))
		return
	}
	kpiID := chi.URLParam(r, "kpiID")
	err = h.Store.DeleteScore(r.Context(), kpiID, p)
	if errors.Is(err, kpi.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "score not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "score_delete_failed", "failed to delete score", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "kpi.score.delete", "kpi", kpiID, map[string]string{"period": p.Key()})
	api.NoContent(w)
}

func (h *Handler) handleEmployeeKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.Store.LoadEmployeeKPIs(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "kpi_list_failed", "failed to list kpis", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, kpis, middleware.GetRequestID(r.Context()))
}

// handleEmployeeScore computes one employee's per-KPI and final scores
// for the requested period.
func (h *Handler) handleEmployeeScore(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	month := r.URL.Query().Get("month")
	v.Month("month", month)
	year, _ := v.Year("year", r.URL.Query().Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	p := period.New(month, year)

	employeeID := chi.URLParam(r, "employeeID")
	kpis, err := h.Store.LoadEmployeeKPIs(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "kpi_list_failed", "failed to list kpis", middleware.GetRequestID(r.Context()))
		return
	}
	configs, err := h.Store.ListConfigs(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "config_list_failed", "failed to list kpi configs", middleware.GetRequestID(r.Context()))
		return
	}

	scores := make(map[string]float64, len(kpis))
	for _, k := range kpis {
		scores[k.Type] = kpi.Score(k, p, kpis, configs)
	}
	api.Success(w, map[string]any{
		"employeeId": employeeID,
		"period":     p.Key(),
		"scores":     scores,
		"finalScore": kpi.FinalScore(kpis, p, configs),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) record(r *http.Request, action, entityType, entityID string, detail any) {
	if h.Audit == nil {
		return
	}
	actorID := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), actorID, action, entityType, entityID, middleware.GetRequestID(r.Context()), detail); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
