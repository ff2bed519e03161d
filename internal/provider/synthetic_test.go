package provider

import (
	"testing"
	"time"

	"github.com/iwvelando/service-optimizer/pkg/datetime"
)

func TestSyntheticSeriesShape(t *testing.T) {
	source := NewSyntheticSource(1)
	source.now = func() time.Time {
		return datetime.MustParseTime(time.RFC3339, "2025-03-10T15:04:05Z")
	}

	points := source.Series("response_time", 14)
	if len(points) != 14 {
		t.Fatalf("expected exactly 14 points, got %d", len(points))
	}

	for i, point := range points {
		if point.Value < 0 {
			t.Errorf("point %d has negative value %v", i, point.Value)
		}
		if i > 0 && !points[i-1].Timestamp.Before(point.Timestamp) {
			t.Errorf("timestamps not monotonically increasing at index %d", i)
		}
	}

	// Values stay near the attribute baseline: trend plus noise is bounded.
	for i, point := range points {
		if point.Value < 100 || point.Value > 140 {
			t.Errorf("point %d value %v outside plausible response_time band", i, point.Value)
		}
	}
}

func TestSyntheticSeriesDeterministicWithSeed(t *testing.T) {
	now := func() time.Time {
		return datetime.MustParseTime(time.RFC3339, "2025-03-10T00:00:00Z")
	}

	a := NewSyntheticSource(7)
	a.now = now
	b := NewSyntheticSource(7)
	b.now = now

	first := a.Series("cpu_usage", 5)
	second := b.Series("cpu_usage", 5)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("seeded series diverged at index %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSyntheticSeriesUnknownAttribute(t *testing.T) {
	points := NewSyntheticSource(3).Series("unknown_attribute", 3)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
}

func TestSyntheticSeriesZeroWindow(t *testing.T) {
	if points := NewSyntheticSource(3).Series("latency", 0); points != nil {
		t.Errorf("expected nil series for zero window, got %v", points)
	}
}
