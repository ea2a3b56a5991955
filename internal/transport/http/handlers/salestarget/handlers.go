package salestargethandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/audit"
	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/period"
	"salesdash/internal/domain/salestarget"
	"salesdash/internal/transport/http/api"
	"salesdash/internal/transport/http/middleware"
	"salesdash/internal/transport/http/shared"
)

type Handler struct {
	Store *salestarget.Store
	Audit *audit.Service
}

func NewHandler(store *salestarget.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermTargetsRead)
	write := middleware.RequirePermission(auth.PermTargetsWrite)

	r.Route("/targets", func(r chi.Router) {
		r.With(write).Put("/", h.handleUpsertTarget)
		r.With(write).Put("/actual", h.handleRecordActual)
		r.With(write).Delete("/", h.handleDeleteEntry)
		r.With(read).Get("/status", h.handleYearStatus)
	})
}

type targetRequest struct {
	EmployeeID string  `json:"employeeId"`
	ProductID  string  `json:"productId"`
	Year       int     `json:"year"`
	Month      string  `json:"month"`
	Target     float64 `json:"target"`
}

func (h *Handler) handleUpsertTarget(w http.ResponseWriter, r *http.Request) {
	var payload targetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("productId", payload.ProductID, "productId is required")
	v.Month("month", payload.Month)
	v.NonNegative("target", payload.Target)
	if payload.Year <= 0 {
		v.Add("year", "must be a positive year")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	p := period.New(payload.Month, payload.Year)
	if err := h.Store.UpsertTarget(r.Context(), payload.EmployeeID, payload.ProductID, p, payload.Target); err != nil {
		api.Fail(w, http.StatusInternalServerError, "target_save_failed", "failed to save target", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "target.upsert", payload.EmployeeID, payload)
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

type actualRequest struct {
	EmployeeID string `json:"employeeId"`
	ProductID  string `json:"productId"`
	Year       int    `json:"year"`
	Month      string `json:"month"`
	// Actual nil clears a previously recorded value.
	Actual *float64 `json:"actual"`
}

func (h *Handler) handleRecordActual(w http.ResponseWriter, r *http.Request) {
	var payload actualRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("productId", payload.ProductID, "productId is required")
	v.Month("month", payload.Month)
	if payload.Year <= 0 {
		v.Add("year", "must be a positive year")
	}
	if payload.Actual != nil {
		v.NonNegative("actual", *payload.Actual)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	p := period.New(payload.Month, payload.Year)
	err := h.Store.RecordActual(r.Context(), payload.EmployeeID, payload.ProductID, p, payload.Actual)
	if errors.Is(err, salestarget.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "no target exists for this month", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "actual_save_failed", "failed to record actual", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "target.actual", payload.EmployeeID, payload)
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := shared.NewValidator()
	v.Required("employeeId", q.Get("employeeId"), "employeeId is required")
	v.Required("productId", q.Get("productId"), "productId is required")
	v.Month("month", q.Get("month"))
	year, _ := v.Year("year", q.Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	p := period.New(q.Get("month"), year)
	err := h.Store.DeleteEntry(r.Context(), q.Get("employeeId"), q.Get("productId"), p)
	if errors.Is(err, salestarget.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "target entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "target_delete_failed", "failed to delete target entry", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "target.delete", q.Get("employeeId"), map[string]string{"productId": q.Get("productId"), "period": p.Key()})
	api.NoContent(w)
}

// handleYearStatus returns the twelve-month carry-over table for one
// employee and product.
func (h *Handler) handleYearStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := shared.NewValidator()
	v.Required("employeeId", q.Get("employeeId"), "employeeId is required")
	v.Required("productId", q.Get("productId"), "productId is required")
	year, _ := v.Year("year", q.Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	entries, err := h.Store.YearEntries(r.Context(), q.Get("employeeId"), q.Get("productId"), year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "status_failed", "failed to load target entries", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"employeeId": q.Get("employeeId"),
		"productId":  q.Get("productId"),
		"year":       year,
		"months":     salestarget.YearStatuses(entries, year),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) record(r *http.Request, action, entityID string, detail any) {
	if h.Audit == nil {
		return
	}
	actorID := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), actorID, action, "sales_target", entityID, middleware.GetRequestID(r.Context()), detail); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
