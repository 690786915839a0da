package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records use case activity.
type BusinessMetrics interface {
	// RecordOperation counts an operation. Domains are "identity", "policy" and
	// "audit"; status is "success" or "error".
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordDecision counts an access decision by namespace and outcome.
	RecordDecision(ctx context.Context, namespace string, allowed bool)

	// RecordModelTokens adds tokens consumed by a model router call.
	RecordModelTokens(ctx context.Context, model string, tokens int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	decisionCounter  metric.Int64Counter
	tokenCounter     metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments on meterProvider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_policy_decisions_total", namespace),
		metric.WithDescription("Access decisions by namespace and outcome"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create decision counter: %w", err)
	}

	tokenCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_model_router_tokens_total", namespace),
		metric.WithDescription("Tokens consumed by policy generation"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		decisionCounter:  decisionCounter,
		tokenCounter:     tokenCounter,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDecision(ctx context.Context, namespace string, allowed bool) {
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	b.decisionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("namespace", namespace),
			attribute.String("outcome", outcome),
		),
	)
}

func (b *businessMetrics) RecordModelTokens(ctx context.Context, model string, tokens int) {
	if tokens <= 0 {
		return
	}
	b.tokenCounter.Add(ctx, int64(tokens), metric.WithAttributes(attribute.String("model", model)))
}

// NoOpBusinessMetrics discards everything. Used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
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

func (n *NoOpBusinessMetrics) RecordDecision(ctx context.Context, namespace string, allowed bool) {}

func (n *NoOpBusinessMetrics) RecordModelTokens(ctx context.Context, model string, tokens int) {}

// Status maps an error to the status label used by the decorators.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
