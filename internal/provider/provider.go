// Package provider supplies historical series for optimization runs and
// accepts normalized series for publication. Reads never fail: when the
// telemetry backend is missing, unreachable, or empty, a synthetic series is
// substituted. Writes are fire-and-forget.
package provider

import (
	"context"

	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

// Backend is a concrete telemetry store. Implementations may fail; the
// Adapter absorbs those failures.
type Backend interface {
	Name() string
	FetchHistory(ctx context.Context, target, attribute string, windowDays int) ([]optimization.HistoricalPoint, error)
	PublishSeries(ctx context.Context, target, attribute string, series []optimization.MetricPoint) error
}

// Adapter wraps an optional Backend with the degradation policy: fetch
// falls back to synthetic data, publish swallows errors. A nil backend is
// valid and means every fetch is synthetic.
type Adapter struct {
	backend Backend
	synth   *SyntheticSource
	logger  *zap.Logger
}

// NewAdapter constructs an Adapter. backend may be nil.
func NewAdapter(logger *zap.Logger, backend Backend) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		backend: backend,
		synth:   NewSyntheticSource(0),
		logger:  logger,
	}
}

// Fetch returns the historical series for the triple. It never fails: on a
// missing backend, a backend error, or an empty result set it returns a
// synthetic series of exactly windowDays points.
func (a *Adapter) Fetch(ctx context.Context, target, attribute string, windowDays int) []optimization.HistoricalPoint {
	if a.backend != nil {
		points, err := a.backend.FetchHistory(ctx, target, attribute, windowDays)
		if err != nil {
			a.logger.Warn("telemetry fetch failed, using synthetic history",
				zap.String("op", "provider.Fetch"),
				zap.String("backend", a.backend.Name()),
				zap.String("target", target),
				zap.String("attribute", attribute),
				zap.Error(err),
			)
		} else if len(points) == 0 {
			a.logger.Debug("telemetry returned no points, using synthetic history",
				zap.String("op", "provider.Fetch"),
				zap.String("target", target),
				zap.String("attribute", attribute),
			)
		} else {
			return points
		}
	}

	return a.synth.Series(attribute, windowDays)
}

// Publish sends a normalized series to the backend. Failures are logged and
// swallowed; publication is an optimization, not a correctness requirement.
func (a *Adapter) Publish(ctx context.Context, target, attribute string, series []optimization.MetricPoint) {
	if a.backend == nil || len(series) == 0 {
		return
	}
	if err := a.backend.PublishSeries(ctx, target, attribute, series); err != nil {
		a.logger.Warn("failed to publish optimized series",
			zap.String("op", "provider.Publish"),
			zap.String("backend", a.backend.Name()),
			zap.String("target", target),
			zap.String("attribute", attribute),
			zap.Int("points", len(series)),
			zap.Error(err),
		)
	}
}
