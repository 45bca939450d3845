package explainer

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	requestCounter    metric.Int64Counter
	durationHistogram metric.Float64Histogram
	errorCounter      metric.Int64Counter
)

// InitMetrics registers the explainer's OTel instruments. Call it once at
// startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("explainer")

	var err error

	requestCounter, err = meter.Int64Counter("explainer.requests.total",
		metric.WithDescription("Successful AI provider requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	durationHistogram, err = meter.Float64Histogram("explainer.request.duration",
		metric.WithDescription("Duration of AI provider requests in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(100, 250, 500, 1000, 2500, 5000, 10000, 30000),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("explainer.errors.total",
		metric.WithDescription("Rejected or failed explainer requests, by operation and kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
