package fftcheck

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// driverMetrics counts validation activity. Instruments come from the meter
// passed with WithMeter, or from the global provider.
type driverMetrics struct {
	trials      metric.Int64Counter
	validations metric.Int64Counter
}

func newDriverMetrics(meter metric.Meter) (*driverMetrics, error) {
	trials, err := meter.Int64Counter(
		"fftcheck_trials_total",
		metric.WithDescription("Validation trials executed, by verdict"),
	)
	if err != nil {
		return nil, fmt.Errorf("create trials counter: %w", err)
	}

	validations, err := meter.Int64Counter(
		"fftcheck_validations_total",
		metric.WithDescription("Completed validations, by verdict"),
	)
	if err != nil {
		return nil, fmt.Errorf("create validations counter: %w", err)
	}

	return &driverMetrics{trials: trials, validations: validations}, nil
}

func (m *driverMetrics) recordTrial(ctx context.Context, candidate string, passed bool) {
	m.trials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("candidate", candidate),
		attribute.Bool("passed", passed),
	))
}

func (m *driverMetrics) recordValidation(ctx context.Context, candidate string, passed bool) {
	m.validations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("candidate", candidate),
		attribute.Bool("passed", passed),
	))
}
