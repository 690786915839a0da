package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/identity/domain"
	"github.com/sundacoder/ZedID/internal/metrics"
)

type identityUseCaseWithMetrics struct {
	next    IdentityUseCase
	metrics metrics.BusinessMetrics
}

// NewIdentityUseCaseWithMetrics wraps an IdentityUseCase with metrics recording.
func NewIdentityUseCaseWithMetrics(useCase IdentityUseCase, m metrics.BusinessMetrics) IdentityUseCase {
	return &identityUseCaseWithMetrics{next: useCase, metrics: m}
}

func (i *identityUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	i.metrics.RecordOperation(ctx, "identity", operation, status)
	i.metrics.RecordDuration(ctx, "identity", operation, time.Since(start), status)
}

func (i *identityUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.CreateIdentityInput,
) (*domain.CreateIdentityOutput, error) {
	start := time.Now()
	output, err := i.next.Create(ctx, input)
	i.record(ctx, "create", start, err)
	return output, err
}

func (i *identityUseCaseWithMetrics) List(ctx context.Context) ([]*domain.Identity, error) {
	start := time.Now()
	identities, err := i.next.List(ctx)
	i.record(ctx, "list", start, err)
	return identities, err
}

func (i *identityUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	start := time.Now()
	identity, err := i.next.Get(ctx, id)
	i.record(ctx, "get", start, err)
	return identity, err
}

func (i *identityUseCaseWithMetrics) FindBySpiffeID(ctx context.Context, uri string) (*domain.Identity, error) {
	start := time.Now()
	identity, err := i.next.FindBySpiffeID(ctx, uri)
	i.record(ctx, "find_by_spiffe_id", start, err)
	return identity, err
}

func (i *identityUseCaseWithMetrics) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	start := time.Now()
	identity, err := i.next.Deactivate(ctx, id)
	i.record(ctx, "deactivate", start, err)
	return identity, err
}

func (i *identityUseCaseWithMetrics) SetTrustLevel(
	ctx context.Context,
	id uuid.UUID,
	level domain.TrustLevel,
) (*domain.Identity, error) {
	start := time.Now()
	identity, err := i.next.SetTrustLevel(ctx, id, level)
	i.record(ctx, "set_trust_level", start, err)
	return identity, err
}

func (i *identityUseCaseWithMetrics) IssueCredential(
	ctx context.Context,
	id uuid.UUID,
	ttlHours int,
) (*domain.Credential, error) {
	start := time.Now()
	cred, err := i.next.IssueCredential(ctx, id, ttlHours)
	i.record(ctx, "issue_credential", start, err)
	return cred, err
}

func (i *identityUseCaseWithMetrics) IssueToken(
	ctx context.Context,
	id uuid.UUID,
	ttlMinutes int,
) (*domain.IssuedToken, error) {
	start := time.Now()
	token, err := i.next.IssueToken(ctx, id, ttlMinutes)
	i.record(ctx, "issue_token", start, err)
	return token, err
}

func (i *identityUseCaseWithMetrics) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	start := time.Now()
	claims, err := i.next.ValidateToken(ctx, token)
	i.record(ctx, "validate_token", start, err)
	return claims, err
}
