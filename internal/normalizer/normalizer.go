// Package normalizer maps the procedure's loosely specified output onto the
// canonical {series, insights, recommendations} model. Every derivation is
// total: any input shape, including an empty one, produces a usable result.
package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/iwvelando/service-optimizer/pkg/format"
	"github.com/iwvelando/service-optimizer/pkg/mathutil"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
)

// Result bundles the three normalized pieces of a run.
type Result struct {
	Series          []optimization.MetricPoint
	Insights        []optimization.Insight
	Recommendations []optimization.Recommendation
}

// Normalize converts a raw procedure result into the canonical model.
// requestedAt anchors per-day timestamps: day N is requestedAt + N days.
// It is a pure function and never fails.
func Normalize(raw optimization.RawResult, windowDays int, requestedAt time.Time) Result {
	if raw == nil {
		raw = optimization.RawResult{}
	}
	if windowDays < 0 {
		windowDays = 0
	}

	return Result{
		Series:          normalizeSeries(raw, windowDays, requestedAt),
		Insights:        normalizeInsights(raw),
		Recommendations: normalizeRecommendations(raw),
	}
}

// normalizeSeries builds the day-indexed series. Priority order: the
// optimized_values field, then results, then a synthetic decay. Day indices
// are always reassigned 1..N in production order regardless of any
// day-numbering present in the source.
func normalizeSeries(raw optimization.RawResult, windowDays int, requestedAt time.Time) []optimization.MetricPoint {
	for _, field := range []string{"optimized_values", "results"} {
		if !raw.Has(field) {
			continue
		}
		entries, ok := raw.List(field)
		if !ok {
			entries = nil
		}
		return coerceSeries(entries, windowDays, requestedAt)
	}
	return decaySeries(raw, windowDays, requestedAt)
}

// coerceSeries accepts up to windowDays entries, each either a bare number
// or a {value, status} structure. A short source yields a short series; no
// padding happens here.
func coerceSeries(entries []interface{}, windowDays int, requestedAt time.Time) []optimization.MetricPoint {
	series := make([]optimization.MetricPoint, 0, windowDays)
	for _, entry := range entries {
		if len(series) >= windowDays {
			break
		}

		value := 0.0
		status := optimization.StatusNormal
		switch v := entry.(type) {
		case map[string]interface{}:
			if f, ok := optimization.FieldFloat(v, "value"); ok {
				value = f
			}
			if s := optimization.FieldString(v, "status", optimization.StatusNormal); optimization.ValidStatus(s) {
				status = s
			}
		default:
			f, ok := coerceEntryFloat(entry)
			if !ok {
				continue
			}
			value = f
		}

		day := len(series) + 1
		series = append(series, optimization.MetricPoint{
			Day:       day,
			Value:     value,
			Timestamp: requestedAt.AddDate(0, 0, day),
			Status:    status,
		})
	}
	return series
}

// decaySeries is the fallback when no recognized series field exists:
// exactly windowDays points starting at final_value (default 100) with a
// multiplicative per-day decay of improvement_rate (default 0.01).
func decaySeries(raw optimization.RawResult, windowDays int, requestedAt time.Time) []optimization.MetricPoint {
	start, ok := raw.Float("final_value")
	if !ok {
		start = constants.FallbackStartValue
	}
	rate, ok := raw.Float("improvement_rate")
	if !ok {
		rate = constants.FallbackDecayRate
	}

	series := make([]optimization.MetricPoint, 0, windowDays)
	for day := 1; day <= windowDays; day++ {
		value := start * math.Pow(1-rate, float64(day-1))
		series = append(series, optimization.MetricPoint{
			Day:       day,
			Value:     mathutil.Round(value),
			Timestamp: requestedAt.AddDate(0, 0, day),
			Status:    optimization.StatusNormal,
		})
	}
	return series
}

// normalizeInsights takes the procedure's insights list when present,
// otherwise derives insights from improvement_percentage. Warnings on the
// raw result are always appended regardless of which branch ran.
func normalizeInsights(raw optimization.RawResult) []optimization.Insight {
	var insights []optimization.Insight

	if raw.Has("insights") {
		entries, _ := raw.List("insights")
		for _, entry := range entries {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			impact := constants.DefaultImpact
			if f, ok := optimization.FieldFloat(m, "impact_score"); ok {
				impact = mathutil.Clamp(f, 0, constants.MaxImpact)
			}
			insights = append(insights, optimization.Insight{
				Kind:    insightKind(optimization.FieldString(m, "type", optimization.InsightInfo)),
				Message: optimization.FieldString(m, "message", ""),
				Impact:  impact,
			})
		}
	} else if improvement, ok := raw.Float("improvement_percentage"); ok {
		if improvement > constants.ImprovementThreshold {
			insights = append(insights, optimization.Insight{
				Kind: optimization.InsightImprovement,
				Message: fmt.Sprintf("Projected improvement of %.1f%% over the optimization window",
					improvement),
				Impact: mathutil.Min(improvement/10*8, constants.MaxImpact),
			})
		} else if improvement < 0 {
			insights = append(insights, optimization.Insight{
				Kind: optimization.InsightWarning,
				Message: fmt.Sprintf("Projected regression of %.1f%% over the optimization window",
					math.Abs(improvement)),
				Impact: constants.RegressionImpact,
			})
		}
	}

	for _, warning := range raw.Strings("warnings") {
		insights = append(insights, optimization.Insight{
			Kind:    optimization.InsightWarning,
			Message: warning,
			Impact:  constants.DefaultImpact,
		})
	}

	return insights
}

// normalizeRecommendations takes the procedure's recommendations list when
// present, otherwise synthesizes a single high-priority recommendation from
// best_configuration. An empty list is a valid outcome.
func normalizeRecommendations(raw optimization.RawResult) []optimization.Recommendation {
	if raw.Has("recommendations") {
		entries, _ := raw.List("recommendations")
		recs := make([]optimization.Recommendation, 0, len(entries))
		for _, entry := range entries {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			recs = append(recs, optimization.Recommendation{
				Priority:            recommendationPriority(optimization.FieldString(m, "priority", optimization.PriorityMedium)),
				Action:              optimization.FieldString(m, "action", ""),
				ExpectedImprovement: optimization.FieldString(m, "expected_improvement", ""),
				Effort:              optimization.FieldString(m, "effort_required", "Unknown"),
			})
		}
		return recs
	}

	if config, ok := raw.Map("best_configuration"); ok && len(config) > 0 {
		improvement, _ := raw.Float("improvement_percentage")
		return []optimization.Recommendation{
			{
				Priority:            optimization.PriorityHigh,
				Action:              fmt.Sprintf("Apply configuration: %s", describeConfiguration(config)),
				ExpectedImprovement: format.Percent(improvement),
				Effort:              "Unknown",
			},
		}
	}

	return nil
}

// coerceEntryFloat accepts the numeric types JSON decoding and in-process
// procedures can produce for a bare series entry.
func coerceEntryFloat(entry interface{}) (float64, bool) {
	switch n := entry.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func describeConfiguration(config map[string]interface{}) string {
	keys := make([]string, 0, len(config))
	for key := range config {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, config[key]))
	}
	return strings.Join(parts, ", ")
}

func insightKind(kind string) string {
	switch kind {
	case optimization.InsightImprovement, optimization.InsightWarning,
		optimization.InsightCritical, optimization.InsightInfo:
		return kind
	}
	return optimization.InsightInfo
}

func recommendationPriority(priority string) string {
	switch priority {
	case optimization.PriorityHigh, optimization.PriorityMedium, optimization.PriorityLow:
		return priority
	}
	return optimization.PriorityMedium
}
