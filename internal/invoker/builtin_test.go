package invoker

import (
	"context"
	"testing"
	"time"

	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

func TestBuiltinModuleProducesRecognizedShape(t *testing.T) {
	inv := NewInProcessInvoker(zap.NewNop(), BuiltinModule())

	env := optimization.Envelope{
		Target:     "checkout-svc",
		Attribute:  "response_time",
		WindowDays: 5,
		History: []optimization.HistoricalPoint{
			{Timestamp: time.Now().AddDate(0, 0, -2), Value: 120},
			{Timestamp: time.Now().AddDate(0, 0, -1), Value: 80},
		},
		RequestedAt: time.Now().UTC(),
	}

	raw, err := inv.Invoke(context.Background(), env)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	values, ok := raw.List("optimized_values")
	if !ok || len(values) != 5 {
		t.Fatalf("expected 5 optimized values, got %v", raw["optimized_values"])
	}

	improvement, ok := raw.Float("improvement_percentage")
	if !ok || improvement <= 0 {
		t.Errorf("expected positive improvement percentage, got %v ok=%v", improvement, ok)
	}

	// Baseline is the history mean (100); the series must decay from it.
	first, ok := values[0].(float64)
	if !ok || first >= 100 {
		t.Errorf("expected first value below the 100 baseline, got %v", values[0])
	}
}

func TestBuiltinModuleWithoutHistory(t *testing.T) {
	inv := NewInProcessInvoker(zap.NewNop(), BuiltinModule())

	raw, err := inv.Invoke(context.Background(), optimization.Envelope{
		Target:      "api",
		Attribute:   "latency",
		WindowDays:  3,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if values, ok := raw.List("optimized_values"); !ok || len(values) != 3 {
		t.Fatalf("expected 3 optimized values, got %v", raw["optimized_values"])
	}
}
