package provider

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/iwvelando/service-optimizer/pkg/mathutil"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
)

// attributeBaselines give each attribute a plausible magnitude so synthetic
// history looks like the metric it stands in for.
var attributeBaselines = map[string]float64{
	constants.AttributeResponseTime: 120,
	constants.AttributeCPUUsage:     55,
	constants.AttributeMemoryUsage:  60,
	constants.AttributeDiskIO:       70,
	constants.AttributeNetworkIO:    80,
	constants.AttributeErrorRate:    2,
	constants.AttributeThroughput:   1500,
	constants.AttributeLatency:      90,
}

const defaultBaseline = 100.0

// SyntheticSource produces deterministic-in-structure, randomized series used
// when no telemetry backend can serve a fetch.
type SyntheticSource struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSyntheticSource constructs a source. A zero seed picks a time-based one.
func NewSyntheticSource(seed int64) *SyntheticSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SyntheticSource{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Series generates exactly windowDays points with monotonically increasing
// daily timestamps, a mild upward trend, bounded noise, and values clamped
// to non-negative.
func (s *SyntheticSource) Series(attribute string, windowDays int) []optimization.HistoricalPoint {
	if windowDays <= 0 {
		return nil
	}

	base, ok := attributeBaselines[attribute]
	if !ok {
		base = defaultBaseline
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.now().UTC().Truncate(24 * time.Hour)
	points := make([]optimization.HistoricalPoint, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		trend := base * 0.002 * float64(i)
		noise := (s.rng.Float64()*2 - 1) * base * 0.05
		value := mathutil.Max(0, base+trend+noise)
		points = append(points, optimization.HistoricalPoint{
			Timestamp: end.AddDate(0, 0, i-windowDays+1),
			Value:     mathutil.Round(value),
		})
	}
	return points
}
