// Package server exposes the optimization pipeline over HTTP. It validates
// inbound requests, delegates to the orchestrator, and renders the canonical
// response as JSON. It makes no optimization decisions of its own.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/service-optimizer/internal/orchestrator"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"github.com/iwvelando/service-optimizer/pkg/validation"
	"go.uber.org/zap"
)

// Runner executes one optimization request. *orchestrator.Service satisfies
// it; tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, req optimization.Request) (*optimization.Response, error)
}

type handler struct {
	logger      *zap.Logger
	runner      Runner
	maxBodySize int64
	version     string
	metrics     *serverMetrics
}

// NewHandler constructs the HTTP handler that serves the optimization API.
func NewHandler(logger *zap.Logger, runner Runner, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		runner:      runner,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		metrics:     newServerMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/optimize", h.handleOptimize)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", h.metrics.handler())

	return mux
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req optimization.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.runsTotal.WithLabelValues("rejected").Inc()
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	validated, err := validation.ValidateRequest(req)
	if err != nil {
		h.metrics.runsTotal.WithLabelValues("rejected").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.runner.Run(r.Context(), validated)
	if err != nil {
		var failure *orchestrator.Failure
		status := http.StatusInternalServerError
		if errors.As(err, &failure) {
			status = http.StatusBadGateway
		}
		h.metrics.runsTotal.WithLabelValues("failed").Inc()
		h.respondError(w, status, err.Error())
		return
	}

	elapsed := time.Since(start)
	h.metrics.runsTotal.WithLabelValues("succeeded").Inc()
	h.metrics.runDuration.Observe(elapsed.Seconds())

	h.logger.Info("optimization request served",
		zap.String("op", "server.handleOptimize"),
		zap.String("target", validated.Target),
		zap.String("attribute", validated.Attribute),
		zap.Int("series_points", len(response.Series)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Error("optimization request failed",
		zap.String("op", "server.handleOptimize"),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
