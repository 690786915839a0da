package usecase

import (
	"context"
	"time"

	"github.com/sundacoder/ZedID/internal/audit/domain"
	"github.com/sundacoder/ZedID/internal/metrics"
)

type auditUseCaseWithMetrics struct {
	next    AuditUseCase
	metrics metrics.BusinessMetrics
}

// NewAuditUseCaseWithMetrics wraps an AuditUseCase with metrics recording.
func NewAuditUseCaseWithMetrics(useCase AuditUseCase, m metrics.BusinessMetrics) AuditUseCase {
	return &auditUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *auditUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	a.metrics.RecordOperation(ctx, "audit", operation, status)
	a.metrics.RecordDuration(ctx, "audit", operation, time.Since(start), status)
}

func (a *auditUseCaseWithMetrics) Record(ctx context.Context, input domain.RecordInput) (*domain.Event, error) {
	start := time.Now()
	event, err := a.next.Record(ctx, input)
	a.record(ctx, "record", start, err)
	return event, err
}

func (a *auditUseCaseWithMetrics) Recent(ctx context.Context, limit int) ([]*domain.Event, int, error) {
	start := time.Now()
	events, total, err := a.next.Recent(ctx, limit)
	a.record(ctx, "recent", start, err)
	return events, total, err
}

func (a *auditUseCaseWithMetrics) Stats(ctx context.Context) (*domain.Stats, error) {
	start := time.Now()
	stats, err := a.next.Stats(ctx)
	a.record(ctx, "stats", start, err)
	return stats, err
}

func (a *auditUseCaseWithMetrics) Verify(ctx context.Context) (*domain.VerifyReport, error) {
	start := time.Now()
	report, err := a.next.Verify(ctx)
	a.record(ctx, "verify", start, err)
	return report, err
}
