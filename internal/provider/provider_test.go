package provider

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/service-optimizer/pkg/datetime"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

type fakeBackend struct {
	fetchPoints  []optimization.HistoricalPoint
	fetchErr     error
	publishErr   error
	publishCalls int
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) FetchHistory(ctx context.Context, target, attribute string, windowDays int) ([]optimization.HistoricalPoint, error) {
	return f.fetchPoints, f.fetchErr
}

func (f *fakeBackend) PublishSeries(ctx context.Context, target, attribute string, series []optimization.MetricPoint) error {
	f.publishCalls++
	return f.publishErr
}

func TestFetchUsesBackendWhenHealthy(t *testing.T) {
	backendPoints := []optimization.HistoricalPoint{
		{Timestamp: datetime.MustParseTime(time.RFC3339, "2025-03-01T00:00:00Z"), Value: 42},
	}
	adapter := NewAdapter(zap.NewNop(), &fakeBackend{fetchPoints: backendPoints})

	points := adapter.Fetch(context.Background(), "checkout-svc", "latency", 7)
	if len(points) != 1 || points[0].Value != 42 {
		t.Errorf("expected backend points, got %v", points)
	}
}

func TestFetchFallsBackOnError(t *testing.T) {
	adapter := NewAdapter(zap.NewNop(), &fakeBackend{fetchErr: fmt.Errorf("connection refused")})

	points := adapter.Fetch(context.Background(), "checkout-svc", "latency", 7)
	if len(points) != 7 {
		t.Fatalf("expected 7 synthetic points, got %d", len(points))
	}
}

func TestFetchFallsBackOnEmptyResult(t *testing.T) {
	adapter := NewAdapter(zap.NewNop(), &fakeBackend{})

	points := adapter.Fetch(context.Background(), "checkout-svc", "latency", 5)
	if len(points) != 5 {
		t.Fatalf("expected 5 synthetic points, got %d", len(points))
	}
}

func TestFetchWithoutBackend(t *testing.T) {
	adapter := NewAdapter(zap.NewNop(), nil)

	points := adapter.Fetch(context.Background(), "checkout-svc", "cpu_usage", 10)
	if len(points) != 10 {
		t.Fatalf("expected 10 synthetic points, got %d", len(points))
	}
}

func TestPublishSwallowsErrors(t *testing.T) {
	backend := &fakeBackend{publishErr: fmt.Errorf("bucket missing")}
	adapter := NewAdapter(zap.NewNop(), backend)

	series := []optimization.MetricPoint{{Day: 1, Value: 10, Status: optimization.StatusNormal}}
	adapter.Publish(context.Background(), "checkout-svc", "latency", series)

	if backend.publishCalls != 1 {
		t.Errorf("expected 1 publish attempt, got %d", backend.publishCalls)
	}
}

func TestPublishSkipsEmptySeries(t *testing.T) {
	backend := &fakeBackend{}
	adapter := NewAdapter(zap.NewNop(), backend)

	adapter.Publish(context.Background(), "checkout-svc", "latency", nil)
	if backend.publishCalls != 0 {
		t.Errorf("expected no publish attempt for empty series, got %d", backend.publishCalls)
	}
}
