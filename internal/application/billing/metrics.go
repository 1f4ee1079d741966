package billing

import (
	"context"
	"time"
)

// MetricsRecorder receives billing outcomes. The telemetry package provides
// the OpenTelemetry implementation; services default to a no-op.
type MetricsRecorder interface {
	RecordGeneration(ctx context.Context, period string, generated, skipped int, elapsed time.Duration, err error)
	RecordPayments(ctx context.Context, status string, count int)
}

type nopRecorder struct{}

func (nopRecorder) RecordGeneration(context.Context, string, int, int, time.Duration, error) {}
func (nopRecorder) RecordPayments(context.Context, string, int)                             {}

// SetMetrics replaces the service's recorder; nil restores the no-op
func (s *BillService) SetMetrics(m MetricsRecorder) {
	if m == nil {
		m = nopRecorder{}
	}
	s.metrics = m
}

// SetMetrics replaces the service's recorder; nil restores the no-op
func (s *PaymentService) SetMetrics(m MetricsRecorder) {
	if m == nil {
		m = nopRecorder{}
	}
	s.metrics = m
}
