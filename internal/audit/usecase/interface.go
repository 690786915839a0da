// Package usecase defines audit ledger operations.
package usecase

import (
	"context"

	"github.com/sundacoder/ZedID/internal/audit/domain"
)

// RecentActionsInStats is how many recent action names Stats reports.
const RecentActionsInStats = 10

// EventRepository stores audit events.
type EventRepository interface {
	Append(ctx context.Context, event *domain.Event) error
	Recent(ctx context.Context, limit int) ([]*domain.Event, int, error)
	Stats(ctx context.Context, recent int) (*domain.Stats, error)
	Each(ctx context.Context, fn func(*domain.Event)) error
}

// AuditUseCase records and reads the audit ledger.
type AuditUseCase interface {
	// Record stamps, signs and appends an event. Actor and request id come from ctx.
	Record(ctx context.Context, input domain.RecordInput) (*domain.Event, error)

	// Recent returns up to limit events, most recent first, and the ledger size.
	Recent(ctx context.Context, limit int) ([]*domain.Event, int, error)

	// Stats returns decision counts and the most recent action names.
	Stats(ctx context.Context) (*domain.Stats, error)

	// Verify checks every event signature.
	Verify(ctx context.Context) (*domain.VerifyReport, error)
}
