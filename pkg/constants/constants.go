// Package constants provides shared constants for the service-optimizer application.
package constants

import "time"

// Attribute names accepted in optimization requests.
const (
	AttributeResponseTime = "response_time"
	AttributeCPUUsage     = "cpu_usage"
	AttributeMemoryUsage  = "memory_usage"
	AttributeDiskIO       = "disk_io"
	AttributeNetworkIO    = "network_io"
	AttributeErrorRate    = "error_rate"
	AttributeThroughput   = "throughput"
	AttributeLatency      = "latency"
)

// Request bounds
const (
	// MinWindowDays is the smallest accepted optimization window.
	MinWindowDays = 1

	// MaxWindowDays is the largest accepted optimization window.
	MaxWindowDays = 365

	// MaxTargetLength is the maximum length of a target name.
	MaxTargetLength = 100
)

// Normalization defaults
const (
	// DefaultImpact is the impact score assigned to insights that omit one.
	DefaultImpact = 5.0

	// MaxImpact is the upper bound of the insight impact scale.
	MaxImpact = 10.0

	// RegressionImpact is the impact score of the insight derived from a
	// negative improvement percentage.
	RegressionImpact = 6.0

	// ImprovementThreshold is the improvement percentage above which a
	// derived improvement insight is emitted.
	ImprovementThreshold = 10.0

	// FallbackStartValue seeds the synthetic decay series when the procedure
	// reports no final value.
	FallbackStartValue = 100.0

	// FallbackDecayRate is the per-day decay applied to the synthetic series
	// when the procedure reports no improvement rate.
	FallbackDecayRate = 0.01
)

// Procedure invocation defaults
const (
	// StrategyProcess selects the isolated child-process invocation strategy.
	StrategyProcess = "process"

	// StrategyInProcess selects the in-process invocation strategy.
	StrategyInProcess = "inprocess"

	// DefaultProcedureTimeout bounds a single procedure invocation.
	DefaultProcedureTimeout = 60 * time.Second
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Attributes returns the fixed set of optimizable attributes.
func Attributes() []string {
	return []string{
		AttributeResponseTime,
		AttributeCPUUsage,
		AttributeMemoryUsage,
		AttributeDiskIO,
		AttributeNetworkIO,
		AttributeErrorRate,
		AttributeThroughput,
		AttributeLatency,
	}
}
