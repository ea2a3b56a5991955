package salestargethandler

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
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithUser(req.Context(), auth.UserContext{UserID: "u1", Role: role})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.RegisterRoutes(r)
	return r
}

func TestUpsertTargetRejectsUnknownMonth(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleManager)

	body, _ := json.Marshal(map[string]any{
		"employeeId": "e1",
		"productId":  "p1",
		"year":       1403,
		"month":      "Januarius",
		"target":     100,
	})
	req := httptest.NewRequest(http.MethodPut, "/targets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown month, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", envelope.Error.Code)
	}
}

func TestUpsertTargetRejectsNegativeTarget(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleManager)

	body, _ := json.Marshal(map[string]any{
		"employeeId": "e1",
		"productId":  "p1",
		"year":       1403,
		"month":      "Mehr",
		"target":     -5,
	})
	req := httptest.NewRequest(http.MethodPut, "/targets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative target, got %d", rec.Code)
	}
}

func TestTargetWriteRequiresManagerRole(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodPut, "/targets", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", rec.Code)
	}
}

func TestYearStatusRequiresQueryParams(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodGet, "/targets/status?year=1403", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing ids, got %d", rec.Code)
	}
}
