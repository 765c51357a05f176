package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Verification results recorded by RecordVerification.
const (
	VerificationValid   = "valid"
	VerificationInvalid = "invalid"
	VerificationError   = "error"
)

// BusinessMetrics records password operation metrics.
type BusinessMetrics interface {
	// RecordOperation counts an operation. Domain is "password" or
	// "calibration"; status is "success" or "error".
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordVerification counts a verification outcome per configured algorithm.
	RecordVerification(ctx context.Context, algorithm, result string)
}

type businessMetrics struct {
	operationCounter    metric.Int64Counter
	durationHisto       metric.Float64Histogram
	verificationCounter metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments, prefixing each name with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of password operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	// Bcrypt and Argon2 take hundreds of milliseconds, so the buckets start at 10ms.
	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of password operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	verificationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_verifications_total", namespace),
		metric.WithDescription("Total number of password verifications by result"),
		metric.WithUnit("{verification}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification counter: %w", err)
	}

	return &businessMetrics{
		operationCounter:    operationCounter,
		durationHisto:       durationHisto,
		verificationCounter: verificationCounter,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(operationAttributes(domain, operation, status)...))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(
		ctx,
		duration.Seconds(),
		metric.WithAttributes(operationAttributes(domain, operation, status)...),
	)
}

func (b *businessMetrics) RecordVerification(ctx context.Context, algorithm, result string) {
	b.verificationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("algorithm", algorithm),
			attribute.String("result", result),
		),
	)
}

func operationAttributes(domain, operation, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics discards everything. Used when METRICS_ENABLED is false.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a NoOpBusinessMetrics.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordVerification(ctx context.Context, algorithm, result string) {}
