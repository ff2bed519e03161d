package provider

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

// InfluxConfig holds connection settings for an InfluxDB v2 backend.
// Credentials typically arrive through INFLUXDB_URL, INFLUXDB_TOKEN,
// INFLUXDB_ORG, and INFLUXDB_BUCKET; their absence selects the synthetic
// fallback rather than raising an error.
type InfluxConfig struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

// Configured reports whether enough settings are present to reach a backend.
func (c InfluxConfig) Configured() bool {
	return c.URL != "" && c.Token != ""
}

// publishMeasurement is the measurement optimized series are written under.
const publishMeasurement = "optimization_forecast"

// InfluxBackend reads historical series from and writes optimized series to
// an InfluxDB v2 bucket.
type InfluxBackend struct {
	client influxdb2.Client
	query  api.QueryAPI
	write  api.WriteAPIBlocking
	bucket string
	logger *zap.Logger
}

// NewInfluxBackend constructs a backend from the given configuration.
func NewInfluxBackend(logger *zap.Logger, cfg InfluxConfig) *InfluxBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxBackend{
		client: client,
		query:  client.QueryAPI(cfg.Org),
		write:  client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		bucket: cfg.Bucket,
		logger: logger,
	}
}

func (b *InfluxBackend) Name() string {
	return "influxdb"
}

// FetchHistory runs a Flux query for daily means of the attribute over the
// window. An empty result is not an error; the Adapter decides what to do
// with it.
func (b *InfluxBackend) FetchHistory(ctx context.Context, target, attribute string, windowDays int) ([]optimization.HistoricalPoint, error) {
	flux := fmt.Sprintf(`from(bucket: %q)
  |> range(start: -%dd)
  |> filter(fn: (r) => r._measurement == %q and r.target == %q)
  |> aggregateWindow(every: 1d, fn: mean, createEmpty: false)
  |> sort(columns: ["_time"])`,
		b.bucket, windowDays, attribute, target)

	result, err := b.query.Query(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("influx query failed: %w", err)
	}
	defer func() {
		_ = result.Close()
	}()

	var points []optimization.HistoricalPoint
	for result.Next() {
		record := result.Record()
		value, ok := record.Value().(float64)
		if !ok {
			continue
		}
		points = append(points, optimization.HistoricalPoint{
			Timestamp: record.Time(),
			Value:     value,
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("influx result iteration failed: %w", err)
	}

	b.logger.Debug("fetched history from influx",
		zap.String("op", "provider.Influx.FetchHistory"),
		zap.String("target", target),
		zap.String("attribute", attribute),
		zap.Int("points", len(points)),
	)
	return points, nil
}

// PublishSeries writes one point per metric point under the forecast
// measurement, tagged by target, attribute, and status.
func (b *InfluxBackend) PublishSeries(ctx context.Context, target, attribute string, series []optimization.MetricPoint) error {
	for _, point := range series {
		p := influxdb2.NewPoint(
			publishMeasurement,
			map[string]string{
				"target":    target,
				"attribute": attribute,
				"status":    point.Status,
			},
			map[string]interface{}{
				"value": point.Value,
				"day":   point.Day,
			},
			point.Timestamp,
		)
		if err := b.write.WritePoint(ctx, p); err != nil {
			return fmt.Errorf("influx write failed at day %d: %w", point.Day, err)
		}
	}
	return nil
}

// Close releases the underlying HTTP client.
func (b *InfluxBackend) Close() {
	b.client.Close()
}
