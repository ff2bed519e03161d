// Package testutil provides common utility functions for testing.
package testutil

import "github.com/iwvelando/service-optimizer/pkg/optimization"

// FindInsight finds the first insight of the given kind in the response.
// Returns a pointer to the insight if found, nil otherwise.
func FindInsight(resp *optimization.Response, kind string) *optimization.Insight {
	for i := range resp.Insights {
		if resp.Insights[i].Kind == kind {
			return &resp.Insights[i]
		}
	}
	return nil
}

// FindRecommendation finds the first recommendation with the given priority.
// Returns a pointer to the recommendation if found, nil otherwise.
func FindRecommendation(resp *optimization.Response, priority string) *optimization.Recommendation {
	for i := range resp.Recommendations {
		if resp.Recommendations[i].Priority == priority {
			return &resp.Recommendations[i]
		}
	}
	return nil
}
