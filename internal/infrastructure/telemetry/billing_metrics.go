package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/rentdesk/backend/billing"

// BillingMetrics counts monthly bill generation and payment updates
type BillingMetrics struct {
	generated  metric.Int64Counter
	skipped    metric.Int64Counter
	failed     metric.Int64Counter
	duration   metric.Float64Histogram
	paidUpdate metric.Int64Counter
}

// NewBillingMetrics registers the billing instruments on provider
func NewBillingMetrics(provider metric.MeterProvider) (*BillingMetrics, error) {
	meter := provider.Meter(meterName)
	m := &BillingMetrics{}
	var err error

	if m.generated, err = meter.Int64Counter("rentdesk.bills.generated",
		metric.WithDescription("Bills written by a generation run"),
		metric.WithUnit("{bill}")); err != nil {
		return nil, err
	}
	if m.skipped, err = meter.Int64Counter("rentdesk.bills.skipped",
		metric.WithDescription("Rooms left without a bill by a generation run"),
		metric.WithUnit("{room}")); err != nil {
		return nil, err
	}
	if m.failed, err = meter.Int64Counter("rentdesk.bills.generation_failed",
		metric.WithDescription("Generation runs aborted by an error"),
		metric.WithUnit("{run}")); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram("rentdesk.bills.generation_duration",
		metric.WithDescription("Wall time of a generation run"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.paidUpdate, err = meter.Int64Counter("rentdesk.bills.payment_updates",
		metric.WithDescription("Bills whose payment status was changed"),
		metric.WithUnit("{bill}")); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordGeneration records the outcome of one GenerateBills run
func (m *BillingMetrics) RecordGeneration(ctx context.Context, period string, generated, skipped int, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("period", period))
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	if err != nil {
		m.failed.Add(ctx, 1, attrs)
		return
	}
	m.generated.Add(ctx, int64(generated), attrs)
	m.skipped.Add(ctx, int64(skipped), attrs)
}

// RecordPayments records count bills moved to the given payment status
func (m *BillingMetrics) RecordPayments(ctx context.Context, status string, count int) {
	m.paidUpdate.Add(ctx, int64(count), metric.WithAttributes(attribute.String("status", status)))
}
