package targetinghandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/auth"
	"salesdash/internal/transport/http/middleware"
)

func testRouter(h *Handler, role string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithUser(req.Context(), auth.UserContext{UserID: "u1", Role: role})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.RegisterRoutes(r)
	return r
}

func TestAllocationsRequireProductAndScope(t *testing.T) {
	router := testRouter(NewHandler(nil), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/targeting/allocations?year=1403", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without productId and scope, got %d", rec.Code)
	}
}

func TestAllocationsRejectUnknownScope(t *testing.T) {
	router := testRouter(NewHandler(nil), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/targeting/allocations?productId=p1&scope=regional&year=1403", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown scope, got %d", rec.Code)
	}
}

func TestAllocationsRejectUnknownKind(t *testing.T) {
	router := testRouter(NewHandler(nil), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/targeting/allocations?productId=p1&scope=national&year=1403&kind=continent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d", rec.Code)
	}
}

func TestMedicalCentersRequireProduct(t *testing.T) {
	router := testRouter(NewHandler(nil), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/targeting/medical-centers?year=1403", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without productId, got %d", rec.Code)
	}
}

func TestAllocationsRequireAuthentication(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(nil).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/targeting/allocations?productId=p1&scope=national&year=1403", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous request, got %d", rec.Code)
	}
}
