// Package optimization defines the canonical data model shared by the
// orchestration pipeline: requests, historical series, the procedure
// envelope, and the normalized response.
package optimization

import "time"

// Insight kinds.
const (
	InsightImprovement = "improvement"
	InsightWarning     = "warning"
	InsightCritical    = "critical"
	InsightInfo        = "info"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Metric point statuses.
const (
	StatusNormal   = "normal"
	StatusImproved = "improved"
	StatusDegraded = "degraded"
	StatusWarning  = "warning"
)

// Request describes a single optimization run. It is immutable once
// constructed; validation happens before it reaches the pipeline.
type Request struct {
	Target     string `json:"target"`
	Attribute  string `json:"attribute"`
	WindowDays int    `json:"window_days"`
}

// HistoricalPoint is a single observed value of the requested attribute.
type HistoricalPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Envelope is the fixed-shape input document handed to the computation
// procedure. Built once per run and never mutated afterwards.
type Envelope struct {
	Target      string            `json:"target"`
	Attribute   string            `json:"attribute"`
	WindowDays  int               `json:"window_days"`
	History     []HistoricalPoint `json:"history"`
	RequestedAt time.Time         `json:"requested_at"`
}

// MetricPoint is the canonical output unit. Day indices are 1-based and
// contiguous within a series.
type MetricPoint struct {
	Day       int       `json:"day"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// Insight is a derived or procedure-supplied observation about the run.
type Insight struct {
	Kind    string  `json:"kind"`
	Message string  `json:"message"`
	Impact  float64 `json:"impact_score"`
}

// Recommendation is a suggested action with expected improvement and effort.
type Recommendation struct {
	Priority            string `json:"priority"`
	Action              string `json:"action"`
	ExpectedImprovement string `json:"expected_improvement"`
	Effort              string `json:"effort_required"`
}

// Response aggregates everything a run produces. It is the only object
// crossing the pipeline's outward boundary and is immutable once built.
type Response struct {
	Target          string           `json:"target"`
	Attribute       string           `json:"attribute"`
	WindowDays      int              `json:"window_days"`
	RunID           string           `json:"run_id,omitempty"`
	Series          []MetricPoint    `json:"series"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// ValidStatus reports whether s is one of the fixed metric point statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNormal, StatusImproved, StatusDegraded, StatusWarning:
		return true
	}
	return false
}
