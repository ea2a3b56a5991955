package plannerhandler

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

func TestProjectEndpointComputesMetrics(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleManager)

	body := map[string]any{
		"unknown": "numSalespeople",
		"inputs": map[string]any{
			"targetCustomers": 48,
			"dealSize":        1000,
			"marketSize":      96000,
		},
		"config": map[string]any{
			"leadToOppRate":      0.2,
			"oppToCustomerRate":  0.25,
			"leadToOppTime":      1,
			"oppToCustomerTime":  2.5,
			"totalTimePerPerson": 160,
			"existingClientTime": 40,
			"salary":             5000,
			"commissionRate":     0.1,
		},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/planner/project", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Salespeople float64 `json:"salespeople"`
			Customers   float64 `json:"customers"`
			Revenue     float64 `json:"revenue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	if envelope.Data.Salespeople != 1 {
		t.Fatalf("expected 1 salesperson, got %v", envelope.Data.Salespeople)
	}
	if envelope.Data.Revenue != 48000 {
		t.Fatalf("expected revenue 48000, got %v", envelope.Data.Revenue)
	}
}

func TestProjectEndpointEncodesInfinitySentinels(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleManager)

	// Zero funnel rates push the model to its infinity sentinels, which
	// must still produce a complete 200 response.
	body := map[string]any{
		"unknown": "numSalespeople",
		"inputs": map[string]any{
			"targetCustomers": 10,
			"dealSize":        1000,
		},
		"config": map[string]any{
			"leadToOppRate":      0,
			"oppToCustomerRate":  0,
			"leadToOppTime":      1,
			"oppToCustomerTime":  2.5,
			"totalTimePerPerson": 160,
			"existingClientTime": 40,
			"salary":             5000,
			"commissionRate":     1,
		},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/planner/project", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected a response body")
	}

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	if envelope.Data["salespeople"] != "Infinity" {
		t.Fatalf("expected salespeople Infinity, got %v", envelope.Data["salespeople"])
	}
	if envelope.Data["breakEvenDeals"] != "Infinity" {
		t.Fatalf("expected breakEvenDeals Infinity, got %v", envelope.Data["breakEvenDeals"])
	}
	if envelope.Data["revenue"] != 10000.0 {
		t.Fatalf("expected revenue 10000, got %v", envelope.Data["revenue"])
	}
	// ROI is revenue minus an infinite cost over that cost; it comes
	// through as null rather than breaking the encoder.
	if roi, ok := envelope.Data["roi"]; !ok || roi != nil {
		t.Fatalf("expected null roi, got %v", roi)
	}
}

func TestProjectEndpointRejectsUnknownUnknown(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleManager)

	req := httptest.NewRequest(http.MethodPost, "/planner/project", bytes.NewReader([]byte(`{"unknown":"dealSize"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestScenarioWriteRequiresManagerRole(t *testing.T) {
	router := testRouter(NewHandler(nil, nil), auth.RoleViewer)

	req := httptest.NewRequest(http.MethodPost, "/planner/scenarios", bytes.NewReader([]byte(`{"name":"q1"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", rec.Code)
	}
}
