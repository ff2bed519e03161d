// Package output provides utilities for formatting and displaying optimization results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *optimization.Response) {
	fmt.Print(PrettyString(result))
}

// PrettyString renders the response as a human-readable report.
func PrettyString(result *optimization.Response) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "--- Optimization results for %s (%s, %d days) ---\n",
		result.Target, result.Attribute, result.WindowDays)
	fmt.Fprintf(&b, "Day | Value        | Status\n")
	fmt.Fprintf(&b, "___ | ____________ | ______\n")
	for _, point := range result.Series {
		b.WriteString(p.Sprintf("%3d | %12.2f | %s\n", point.Day, point.Value, point.Status))
	}

	if len(result.Insights) > 0 {
		fmt.Fprintf(&b, "\nInsights:\n")
		for _, insight := range result.Insights {
			fmt.Fprintf(&b, "  [%s] %s (impact %.1f)\n", insight.Kind, insight.Message, insight.Impact)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRecommendations:\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "  [%s] %s (expected %s, effort %s)\n",
				rec.Priority, rec.Action, rec.ExpectedImprovement, rec.Effort)
		}
	}

	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result *optimization.Response) {
	fmt.Print(CsvString(result))
}

// CsvString renders the series in comma-separated value format.
func CsvString(result *optimization.Response) string {
	var b strings.Builder
	b.WriteString(`"day","timestamp","value","status"` + "\n")
	for _, point := range result.Series {
		fmt.Fprintf(&b, `"%d","%s","%.2f","%s"`+"\n",
			point.Day, point.Timestamp.UTC().Format("2006-01-02"), point.Value, point.Status)
	}
	return b.String()
}
