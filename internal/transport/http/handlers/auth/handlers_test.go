package authhandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/auth"
	"salesdash/internal/transport/http/middleware"
)

func testRouter(h *Handler, role string) http.Handler {
	r := chi.NewRouter()
	if role != "" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := middleware.WithUser(req.Context(), auth.UserContext{UserID: "u1", Email: "u1@example.com", Role: role})
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	h.RegisterRoutes(r)
	return r
}

func TestRegisterRequiresAuthentication(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), "")

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous register, got %d", rec.Code)
	}
}

func TestRegisterRejectsNonAdmin(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), auth.RoleManager)

	body, _ := json.Marshal(map[string]string{"email": "new@example.com", "password": "longenough"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager register, got %d", rec.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), auth.RoleAdmin)

	body, _ := json.Marshal(map[string]string{"email": "new@example.com", "password": "short"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", rec.Code)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), auth.RoleAdmin)

	body, _ := json.Marshal(map[string]string{"email": "new@example.com", "password": "longenough", "role": "Supervisor"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "invalid_role" {
		t.Fatalf("expected invalid_role, got %q", envelope.Error.Code)
	}
}

func TestMeReturnsUserAndPermissions(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			ID          string   `json:"id"`
			Role        string   `json:"role"`
			Permissions []string `json:"permissions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != "u1" || envelope.Data.Role != auth.RoleViewer {
		t.Fatalf("unexpected identity: %+v", envelope.Data)
	}
	if len(envelope.Data.Permissions) == 0 {
		t.Fatalf("expected viewer permissions to be listed")
	}
}

func TestLogoutRequiresAuthentication(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), "")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestLogoutSucceedsForAuthenticatedUser(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestMeRequiresAuthentication(t *testing.T) {
	router := testRouter(NewHandler(nil, nil, "secret"), "")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
