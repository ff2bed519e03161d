package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/service-optimizer/internal/invoker"
	"github.com/iwvelando/service-optimizer/internal/orchestrator"
	"github.com/iwvelando/service-optimizer/internal/provider"
	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

func newTestRunner(t *testing.T, module invoker.Module) Runner {
	t.Helper()
	adapter := provider.NewAdapter(zap.NewNop(), nil)
	svc, err := orchestrator.NewService(zap.NewNop(), adapter, invoker.NewInProcessInvoker(zap.NewNop(), module))
	if err != nil {
		t.Fatalf("failed to build orchestrator: %v", err)
	}
	return svc
}

func successModule() invoker.Module {
	return invoker.Module{
		"optimize": func(ctx context.Context, env optimization.Envelope) (optimization.RawResult, error) {
			return optimization.RawResult{
				"optimized_values":       []interface{}{10.0, 9.0, 8.0},
				"improvement_percentage": 20.0,
			}, nil
		},
	}
}

func postOptimize(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleOptimizeSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), newTestRunner(t, successModule()), constants.DefaultMaxBodySizeBytes, "test")

	rr := postOptimize(t, handler, `{"target": "checkout-svc", "attribute": "response_time", "window_days": 5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp optimization.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Target != "checkout-svc" || len(resp.Series) != 3 {
		t.Errorf("unexpected response: target=%q series=%d", resp.Target, len(resp.Series))
	}
	if len(resp.Insights) != 1 || resp.Insights[0].Impact != 10.0 {
		t.Errorf("unexpected insights: %+v", resp.Insights)
	}
}

func TestHandleOptimizeValidation(t *testing.T) {
	handler := NewHandler(zap.NewNop(), newTestRunner(t, successModule()), constants.DefaultMaxBodySizeBytes, "test")

	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{"target": `},
		{"empty target", `{"target": "", "attribute": "latency", "window_days": 5}`},
		{"bad attribute", `{"target": "svc", "attribute": "mood", "window_days": 5}`},
		{"bad window", `{"target": "svc", "attribute": "latency", "window_days": 0}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := postOptimize(t, handler, c.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleOptimizeProcedureFailure(t *testing.T) {
	module := invoker.Module{} // no entry point registered
	handler := NewHandler(zap.NewNop(), newTestRunner(t, module), constants.DefaultMaxBodySizeBytes, "test")

	rr := postOptimize(t, handler, `{"target": "svc", "attribute": "latency", "window_days": 5}`)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", rr.Code, rr.Body.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if !strings.Contains(payload["error"], "missing_entrypoint") {
		t.Errorf("expected missing_entrypoint in error, got %q", payload["error"])
	}
}

func TestHandleOptimizeMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), newTestRunner(t, successModule()), constants.DefaultMaxBodySizeBytes, "test")

	req := httptest.NewRequest(http.MethodGet, "/api/optimize", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), newTestRunner(t, successModule()), constants.DefaultMaxBodySizeBytes, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode version payload: %v", err)
	}
	if payload["version"] != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", payload["version"])
	}
}

func TestHandleHealth(t *testing.T) {
	handler := NewHandler(zap.NewNop(), newTestRunner(t, successModule()), constants.DefaultMaxBodySizeBytes, "test")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := NewHandler(zap.NewNop(), newTestRunner(t, successModule()), constants.DefaultMaxBodySizeBytes, "test")

	// Generate one successful run so the counter has a sample.
	postOptimize(t, handler, `{"target": "svc", "attribute": "latency", "window_days": 2}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "service_optimizer_runs_total") {
		t.Error("expected runs_total metric in exposition")
	}
}
