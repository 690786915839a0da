package usecase

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/audit/domain"
	"github.com/sundacoder/ZedID/internal/audit/service"
	apperrors "github.com/sundacoder/ZedID/internal/errors"
)

type auditUseCase struct {
	repo   EventRepository
	signer service.Signer
}

// NewAuditUseCase creates an AuditUseCase signing events with signer.
func NewAuditUseCase(repo EventRepository, signer service.Signer) AuditUseCase {
	return &auditUseCase{repo: repo, signer: signer}
}

func (a *auditUseCase) Record(ctx context.Context, input domain.RecordInput) (*domain.Event, error) {
	if err := input.Decision.Validate(); err != nil {
		return nil, err
	}
	if input.Action == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "audit action is required")
	}

	metadata := maps.Clone(input.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	if requestID, ok := domain.RequestIDFromContext(ctx); ok {
		metadata["request_id"] = requestID
	}

	event := &domain.Event{
		ID:         uuid.Must(uuid.NewV7()),
		IdentityID: input.IdentityID,
		Action:     input.Action,
		Actor:      domain.ActorFromContext(ctx),
		Resource:   input.Resource,
		Decision:   input.Decision,
		Timestamp:  time.Now().UTC(),
		Metadata:   metadata,
	}
	if input.Reason != "" {
		reason := input.Reason
		event.Reason = &reason
	}

	signature, err := a.signer.Sign(event)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign audit event")
	}
	event.Signature = signature

	if err := a.repo.Append(ctx, event); err != nil {
		return nil, apperrors.Wrap(err, "failed to append audit event")
	}
	return event, nil
}

func (a *auditUseCase) Recent(ctx context.Context, limit int) ([]*domain.Event, int, error) {
	return a.repo.Recent(ctx, limit)
}

func (a *auditUseCase) Stats(ctx context.Context) (*domain.Stats, error) {
	return a.repo.Stats(ctx, RecentActionsInStats)
}

func (a *auditUseCase) Verify(ctx context.Context) (*domain.VerifyReport, error) {
	report := &domain.VerifyReport{InvalidIDs: []uuid.UUID{}}
	err := a.repo.Each(ctx, func(event *domain.Event) {
		report.Total++
		if a.signer.Verify(event) != nil {
			report.Invalid++
			report.InvalidIDs = append(report.InvalidIDs, event.ID)
			return
		}
		report.Valid++
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
