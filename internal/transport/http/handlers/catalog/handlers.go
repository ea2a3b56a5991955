package cataloghandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/audit"
	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/catalog"
	"salesdash/internal/domain/period"
	"salesdash/internal/transport/http/api"
	"salesdash/internal/transport/http/middleware"
	"salesdash/internal/transport/http/shared"
)

type Handler struct {
	Store *catalog.Store
	Audit *audit.Service
}

func NewHandler(store *catalog.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermCatalogRead)
	write := middleware.RequirePermission(auth.PermCatalogWrite)

	r.Route("/employees", func(r chi.Router) {
		r.With(read).Get("/", h.handleListEmployees)
		r.With(write).Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(read).Get("/", h.handleGetEmployee)
			r.With(write).Put("/", h.handleUpdateEmployee)
			r.With(write).Delete("/", h.handleDeleteEmployee)
			r.With(write).Put("/notes/{periodKey}", h.handleUpsertNote)
			r.With(write).Delete("/notes/{periodKey}", h.handleDeleteNote)
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.With(read).Get("/", h.handleListProducts)
		r.With(write).Post("/", h.handleCreateProduct)
		r.Route("/{productID}", func(r chi.Router) {
			r.With(read).Get("/", h.handleGetProduct)
			r.With(write).Put("/", h.handleUpdateProduct)
			r.With(write).Delete("/", h.handleDeleteProduct)
		})
	})

	r.Route("/territories", func(r chi.Router) {
		r.With(read).Get("/", h.handleListTerritories)
		r.With(write).Post("/", h.handleCreateTerritory)
		r.Route("/{territoryID}", func(r chi.Router) {
			r.With(read).Get("/", h.handleGetTerritory)
			r.With(write).Put("/", h.handleUpdateTerritory)
			r.With(write).Delete("/", h.handleDeleteTerritory)
			r.With(write).Put("/assignee", h.handleAssignTerritory)
			r.With(write).Put("/shares/{productID}", h.handleUpsertShare)
		})
	})

	r.Route("/market-sizes", func(r chi.Router) {
		r.With(read).Get("/", h.handleListMarketSizes)
		r.With(write).Put("/", h.handleUpsertMarketSize)
		r.With(write).Delete("/", h.handleDeleteMarketSize)
	})
}

type employeeRequest struct {
	Name                  string   `json:"name"`
	Title                 string   `json:"title"`
	Department            string   `json:"department"`
	TargetAcquisitionRate *float64 `json:"targetAcquisitionRate"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if payload.TargetAcquisitionRate != nil {
		v.NonNegative("targetAcquisitionRate", *payload.TargetAcquisitionRate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp := catalog.Employee{
		Name:                  strings.TrimSpace(payload.Name),
		Title:                 strings.TrimSpace(payload.Title),
		Department:            strings.TrimSpace(payload.Department),
		TargetAcquisitionRate: catalog.DefaultAcquisitionRate,
	}
	if payload.TargetAcquisitionRate != nil {
		emp.TargetAcquisitionRate = *payload.TargetAcquisitionRate
	}

	id, err := h.Store.CreateEmployee(r.Context(), emp, payload.TargetAcquisitionRate)
	if errors.Is(err, catalog.ErrInvalidRate) {
		api.Fail(w, http.StatusBadRequest, "invalid_rate", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}

	h.record(r, "employee.create", "employee", id, emp)
	emp.ID = id
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if payload.TargetAcquisitionRate != nil {
		v.NonNegative("targetAcquisitionRate", *payload.TargetAcquisitionRate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp := catalog.Employee{
		ID:         chi.URLParam(r, "employeeID"),
		Name:       strings.TrimSpace(payload.Name),
		Title:      strings.TrimSpace(payload.Title),
		Department: strings.TrimSpace(payload.Department),
	}
	if payload.TargetAcquisitionRate != nil {
		emp.TargetAcquisitionRate = *payload.TargetAcquisitionRate
	}

	err := h.Store.UpdateEmployee(r.Context(), emp)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, catalog.ErrInvalidRate):
		api.Fail(w, http.StatusBadRequest, "invalid_rate", err.Error(), middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}

	h.record(r, "employee.update", "employee", emp.ID, emp)
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	err := h.Store.DeleteEmployee(r.Context(), employeeID)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "employee.delete", "employee", employeeID, nil)
	api.NoContent(w)
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) handleUpsertNote(w http.ResponseWriter, r *http.Request) {
	p, err := period.ParseKey(chi.URLParam(r, "periodKey"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like Month-Year", middleware.GetRequestID(r.Context()))
		return
	}
	var payload noteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Store.UpsertEmployeeNote(r.Context(), employeeID, p, payload.Note); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "note_save_failed", "failed to save note", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "employee.note.upsert", "employee", employeeID, map[string]string{"period": p.Key()})
	api.Success(w, map[string]string{"period": p.Key(), "note": payload.Note}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	p, err := period.ParseKey(chi.URLParam(r, "periodKey"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like Month-Year", middleware.GetRequestID(r.Context()))
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Store.DeleteEmployeeNote(r.Context(), employeeID, p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "note not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "note_delete_failed", "failed to delete note", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "employee.note.delete", "employee", employeeID, map[string]string{"period": p.Key()})
	api.NoContent(w)
}

type productRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.ListProducts(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "product_list_failed", "failed to list products", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, products, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Store.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "product not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "product_get_failed", "failed to load product", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, product, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.NonNegative("price", payload.Price)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	product := catalog.Product{Name: strings.TrimSpace(payload.Name), Price: payload.Price}
	id, err := h.Store.CreateProduct(r.Context(), product)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "product_create_failed", "failed to create product", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "product.create", "product", id, product)
	product.ID = id
	api.Created(w, product, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.NonNegative("price", payload.Price)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	product := catalog.Product{ID: chi.URLParam(r, "productID"), Name: strings.TrimSpace(payload.Name), Price: payload.Price}
	err := h.Store.UpdateProduct(r.Context(), product)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "product not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "product_update_failed", "failed to update product", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "product.update", "product", product.ID, product)
	api.Success(w, product, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	err := h.Store.DeleteProduct(r.Context(), productID)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "product not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "product_delete_failed", "failed to delete product", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "product.delete", "product", productID, nil)
	api.NoContent(w)
}

type territoryRequest struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

func (h *Handler) handleListTerritories(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" && !catalog.ValidKind(kind) {
		api.Fail(w, http.StatusBadRequest, "invalid_kind", "unknown territory kind", middleware.GetRequestID(r.Context()))
		return
	}
	territories, err := h.Store.ListTerritories(r.Context(), kind)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "territory_list_failed", "failed to list territories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, territories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTerritory(w http.ResponseWriter, r *http.Request) {
	territory, err := h.Store.GetTerritory(r.Context(), chi.URLParam(r, "territoryID"))
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "territory not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "territory_get_failed", "failed to load territory", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, territory, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTerritory(w http.ResponseWriter, r *http.Request) {
	var payload territoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("kind", payload.Kind, []string{catalog.KindProvince, catalog.KindMedicalCenter}, "must be province or medical_center")
	v.Required("kind", payload.Kind, "kind is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	territory := catalog.Territory{Kind: payload.Kind, Name: strings.TrimSpace(payload.Name)}
	id, err := h.Store.CreateTerritory(r.Context(), territory)
	if errors.Is(err, catalog.ErrInvalidKind) {
		api.Fail(w, http.StatusBadRequest, "invalid_kind", "unknown territory kind", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "territory_create_failed", "failed to create territory", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "territory.create", "territory", id, territory)
	territory.ID = id
	api.Created(w, territory, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTerritory(w http.ResponseWriter, r *http.Request) {
	var payload territoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	territory := catalog.Territory{ID: chi.URLParam(r, "territoryID"), Name: strings.TrimSpace(payload.Name)}
	err := h.Store.UpdateTerritory(r.Context(), territory)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "territory not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "territory_update_failed", "failed to update territory", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "territory.update", "territory", territory.ID, territory)
	api.Success(w, territory, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTerritory(w http.ResponseWriter, r *http.Request) {
	territoryID := chi.URLParam(r, "territoryID")
	err := h.Store.DeleteTerritory(r.Context(), territoryID)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "territory not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "territory_delete_failed", "failed to delete territory", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "territory.delete", "territory", territoryID, nil)
	api.NoContent(w)
}

type assignRequest struct {
	// EmployeeID nil or empty clears the assignment.
	EmployeeID *string `json:"employeeId"`
}

func (h *Handler) handleAssignTerritory(w http.ResponseWriter, r *http.Request) {
	var payload assignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	assignee := payload.EmployeeID
	if assignee != nil && strings.TrimSpace(*assignee) == "" {
		assignee = nil
	}

	territoryID := chi.URLParam(r, "territoryID")
	err := h.Store.AssignTerritory(r.Context(), territoryID, assignee)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "territory or employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "territory_assign_failed", "failed to assign territory", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "territory.assign", "territory", territoryID, map[string]any{"employeeId": assignee})
	api.Success(w, map[string]any{"territoryId": territoryID, "employeeId": assignee}, middleware.GetRequestID(r.Context()))
}

type shareRequest struct {
	Share float64 `json:"share"`
}

func (h *Handler) handleUpsertShare(w http.ResponseWriter, r *http.Request) {
	var payload shareRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.NonNegative("share", payload.Share)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	territoryID := chi.URLParam(r, "territoryID")
	productID := chi.URLParam(r, "productID")
	err := h.Store.UpsertTerritoryShare(r.Context(), territoryID, productID, payload.Share)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "territory or product not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "share_save_failed", "failed to save market share", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "territory.share.upsert", "territory", territoryID, map[string]any{"productId": productID, "share": payload.Share})
	api.Success(w, map[string]any{"territoryId": territoryID, "productId": productID, "share": payload.Share}, middleware.GetRequestID(r.Context()))
}

type marketSizeRequest struct {
	Scope     string  `json:"scope"`
	ProductID string  `json:"productId"`
	Year      int     `json:"year"`
	Units     float64 `json:"units"`
}

func (h *Handler) handleListMarketSizes(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope != "" && !catalog.ValidScope(scope) {
		api.Fail(w, http.StatusBadRequest, "invalid_scope", "unknown market scope", middleware.GetRequestID(r.Context()))
		return
	}
	sizes, err := h.Store.ListMarketSizes(r.Context(), scope)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "market_list_failed", "failed to list market sizes", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sizes, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsertMarketSize(w http.ResponseWriter, r *http.Request) {
	var payload marketSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("productId", payload.ProductID, "productId is required")
	v.Enum("scope", payload.Scope, []string{catalog.ScopeNational, catalog.ScopeTehran}, "must be national or tehran")
	v.Required("scope", payload.Scope, "scope is required")
	v.NonNegative("units", payload.Units)
	if payload.Year <= 0 {
		v.Add("year", "must be a positive year")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	size := catalog.MarketSize{Scope: payload.Scope, ProductID: payload.ProductID, Year: payload.Year, Units: payload.Units}
	err := h.Store.UpsertMarketSize(r.Context(), size)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "product not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "market_save_failed", "failed to save market size", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "market.upsert", "market_size", size.ProductID, size)
	api.Success(w, size, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteMarketSize(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	productID := r.URL.Query().Get("productId")
	v := shared.NewValidator()
	v.Required("productId", productID, "productId is required")
	v.Required("scope", scope, "scope is required")
	year, _ := v.Year("year", r.URL.Query().Get("year"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Store.DeleteMarketSize(r.Context(), scope, productID, year)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "market size not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "market_delete_failed", "failed to delete market size", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "market.delete", "market_size", productID, map[string]any{"scope": scope, "year": year})
	api.NoContent(w)
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
