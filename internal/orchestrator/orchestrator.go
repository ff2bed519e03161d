// Package orchestrator composes the provider, invoker, and normalizer into
// the single entry point for an optimization run.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/service-optimizer/internal/invoker"
	"github.com/iwvelando/service-optimizer/internal/normalizer"
	"github.com/iwvelando/service-optimizer/internal/provider"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

// Failure wraps the single fatal condition of a run: a procedure failure.
type Failure struct {
	Cause error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("optimization run failed: %v", f.Cause)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Service runs optimization requests. Each run owns its envelope, result,
// and response; nothing is shared across concurrent runs.
type Service struct {
	provider *provider.Adapter
	invoker  invoker.Invoker
	logger   *zap.Logger
	now      func() time.Time
}

// NewService constructs a Service from its collaborators.
func NewService(logger *zap.Logger, adapter *provider.Adapter, inv invoker.Invoker) (*Service, error) {
	if adapter == nil {
		return nil, fmt.Errorf("provider adapter cannot be nil")
	}
	if inv == nil {
		return nil, fmt.Errorf("invoker cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: adapter,
		invoker:  inv,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Run executes one optimization: fetch history, invoke the procedure,
// normalize its output, publish best-effort, assemble the response. The only
// failure path is the procedure invocation, surfaced as a *Failure.
func (s *Service) Run(ctx context.Context, req optimization.Request) (*optimization.Response, error) {
	runID := uuid.NewString()
	requestedAt := s.now().UTC()
	start := time.Now()

	logger := s.logger.With(
		zap.String("run_id", runID),
		zap.String("target", req.Target),
		zap.String("attribute", req.Attribute),
		zap.Int("window_days", req.WindowDays),
	)

	history := s.provider.Fetch(ctx, req.Target, req.Attribute, req.WindowDays)

	envelope := optimization.Envelope{
		Target:      req.Target,
		Attribute:   req.Attribute,
		WindowDays:  req.WindowDays,
		History:     history,
		RequestedAt: requestedAt,
	}

	raw, err := s.invoker.Invoke(ctx, envelope)
	if err != nil {
		logger.Error("procedure invocation failed",
			zap.String("op", "orchestrator.Run"),
			zap.String("strategy", s.invoker.Name()),
			zap.Error(err),
		)
		return nil, &Failure{Cause: err}
	}

	normalized := normalizer.Normalize(raw, req.WindowDays, requestedAt)

	// Best-effort: the outcome of publication never gates the response.
	s.provider.Publish(ctx, req.Target, req.Attribute, normalized.Series)

	response := &optimization.Response{
		Target:          req.Target,
		Attribute:       req.Attribute,
		WindowDays:      req.WindowDays,
		RunID:           runID,
		Series:          normalized.Series,
		Insights:        normalized.Insights,
		Recommendations: normalized.Recommendations,
		GeneratedAt:     requestedAt,
	}

	logger.Info("optimization run completed",
		zap.String("op", "orchestrator.Run"),
		zap.String("strategy", s.invoker.Name()),
		zap.Int("series_points", len(response.Series)),
		zap.Int("insights", len(response.Insights)),
		zap.Int("recommendations", len(response.Recommendations)),
		zap.Duration("duration", time.Since(start)),
	)
	return response, nil
}
