package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/config"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/domain"
	"github.com/Guilhermestudar/dashboard-logistica-unb/internal/service"
	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := service.NewSimulationService(config.Defaults().Simulation, nil)
	if err != nil {
		t.Fatalf("NewSimulationService failed: %v", err)
	}
	return NewRouter(&Services{SimulationService: svc}, origins)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
}

func TestReportRoute(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/simulations/report", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var report domain.DashboardReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.Policy.SafetyStock != 55 || report.Policy.ReorderPoint != 305 {
		t.Errorf("Unexpected policy: %+v", report.Policy)
	}
	if report.Protected == nil || report.Unprotected == nil {
		t.Fatal("Expected both runs in the report")
	}
	if !report.Protected.TotalCost.Equal(report.Protected.HoldingCost.Add(report.Protected.OrderingCost).Add(report.Protected.StockoutCost)) {
		t.Error("Expected total cost to survive the JSON round trip as the sum of its parts")
	}
	if len(report.Sweep) != 20 {
		t.Errorf("Expected 20 sweep points, got %d", len(report.Sweep))
	}
}

func TestReportRoute_RejectsServiceLevel100(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations/report", strings.NewReader(`{"target_service_level": 100}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t, []string{"https://dash.example.com, https://ops.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example.com" {
		t.Errorf("Expected origin to be allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for a foreign origin, got %d", w.Code)
	}
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	parsed, allowAll := normalizeAllowedOrigins([]string{" a.com ,b.com", "", "*"})
	if !allowAll {
		t.Error("Expected wildcard to allow all origins")
	}
	if len(parsed) != 2 || parsed[0] != "a.com" || parsed[1] != "b.com" {
		t.Errorf("Unexpected origins: %v", parsed)
	}
}

func TestSimulationRoutes_RejectOutOfRangeInputs(t *testing.T) {
	router := newTestRouter(t, nil)

	testCases := []struct {
		name string
		path string
		body string
	}{
		{"huge horizon", "/api/v1/simulations/simulate", `{"horizon_days": 1099511627776}`},
		{"horizon one past the limit", "/api/v1/simulations/report", `{"horizon_days": 36501}`},
		{"huge demand mean", "/api/v1/simulations/simulate", `{"demand_mean": 1e18, "demand_std_dev": 0}`},
		{"huge std dev", "/api/v1/simulations/compare", `{"demand_std_dev": 1e300}`},
		{"huge lead time", "/api/v1/simulations/simulate", `{"lead_time_days": 9000000000}`},
		{"huge order quantity", "/api/v1/simulations/simulate", `{"order_quantity": 9000000000000}`},
		{"huge sweep", "/api/v1/simulations/sweep", `{"sweep_points": 100000000}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
