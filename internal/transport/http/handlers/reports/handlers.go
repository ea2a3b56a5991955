package reportshandler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/catalog"
	"salesdash/internal/domain/kpi"
	"salesdash/internal/domain/period"
	"salesdash/internal/domain/reports"
	"salesdash/internal/transport/http/api"
	"salesdash/internal/transport/http/middleware"
	"salesdash/internal/transport/http/shared"
)

const topPerformerCount = 5

type Handler struct {
	Reports *reports.Store
	Catalog *catalog.Store
	KPI     *kpi.Store
}

func NewHandler(reportsStore *reports.Store, catalogStore *catalog.Store, kpiStore *kpi.Store) *Handler {
	return &Handler{Reports: reportsStore, Catalog: catalogStore, KPI: kpiStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermReportsRead)
	r.Route("/reports", func(r chi.Router) {
		r.With(read).Get("/summary", h.handleSummary)
		r.With(read).Get("/scores", h.handleScoreMatrix)
		r.With(read).Get("/scores.pdf", h.handleScorePDF)
	})
}

func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request) (period.Period, bool) {
	v := shared.NewValidator()
	month := r.URL.Query().Get("month")
	v.Month("month", month)
	year, _ := v.Year("year", r.URL.Query().Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return period.Period{}, false
	}
	return period.New(month, year), true
}

func (h *Handler) scoreMatrix(r *http.Request, p period.Period) ([]kpi.ScoreRow, error) {
	employees, err := h.Catalog.ListEmployees(r.Context())
	if err != nil {
		return nil, err
	}
	kpis, err := h.KPI.LoadAllKPIs(r.Context())
	if err != nil {
		return nil, err
	}
	configs, err := h.KPI.ListConfigs(r.Context())
	if err != nil {
		return nil, err
	}
	return reports.BuildScoreMatrix(employees, kpis, configs, p), nil
}

// handleSummary is the dashboard header: entity counts plus the score
// leaderboard for the requested period.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	employeeCount, err := h.Reports.EmployeeCount(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build summary", middleware.GetRequestID(r.Context()))
		return
	}
	productCount, err := h.Reports.ProductCount(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build summary", middleware.GetRequestID(r.Context()))
		return
	}
	territoryCount, assigned, err := h.Reports.TerritoryCounts(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build summary", middleware.GetRequestID(r.Context()))
		return
	}

	matrix, err := h.scoreMatrix(r, p)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build summary", middleware.GetRequestID(r.Context()))
		return
	}

	summary := reports.BuildSummary(employeeCount, productCount, territoryCount, assigned, matrix, topPerformerCount)
	api.Success(w, map[string]any{"period": p.Key(), "summary": summary}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleScoreMatrix(w http.ResponseWriter, r *http.Request) {
	p, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}
	matrix, err := h.scoreMatrix(r, p)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scores_failed", "failed to build score matrix", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"period": p.Key(), "rows": matrix}, middleware.GetRequestID(r.Context()))
}

// handleScorePDF renders the monthly score matrix as a PDF and streams it
// to the caller.
func (h *Handler) handleScorePDF(w http.ResponseWriter, r *http.Request) {
	p, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}
	matrix, err := h.scoreMatrix(r, p)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scores_failed", "failed to build score matrix", middleware.GetRequestID(r.Context()))
		return
	}
	configs, err := h.KPI.ListConfigs(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scores_failed", "failed to list kpi configs", middleware.GetRequestID(r.Context()))
		return
	}

	types := make([]string, 0, len(configs))
	for kpiType := range configs {
		types = append(types, kpiType)
	}
	sort.Strings(types)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Monthly Score Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", p.Key()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 8, "Employee", "1", 0, "L", false, 0, "")
	for _, kpiType := range types {
		pdf.CellFormat(30, 8, configs[kpiType].Name, "1", 0, "C", false, 0, "")
	}
	pdf.CellFormat(25, 8, "Final", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range matrix {
		pdf.CellFormat(60, 8, row.EmployeeName, "1", 0, "L", false, 0, "")
		for _, kpiType := range types {
			pdf.CellFormat(30, 8, fmt.Sprintf("%.1f", row.Scores[kpiType]), "1", 0, "R", false, 0, "")
		}
		pdf.CellFormat(25, 8, fmt.Sprintf("%.1f", row.FinalScore), "1", 1, "R", false, 0, "")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=scores-%s.pdf", p.Key()))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
	}
}
