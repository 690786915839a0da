// Package usecase implements the identity registry and credential issuance flows.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	"github.com/sundacoder/ZedID/internal/identity/domain"
)

// IdentityRepository stores identities.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	GetBySpiffeID(ctx context.Context, uri string) (*domain.Identity, error)
	List(ctx context.Context) ([]*domain.Identity, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Identity, error)
	SetTrustLevel(ctx context.Context, id uuid.UUID, level domain.TrustLevel) (*domain.Identity, error)
}

// AuditRecorder appends to the audit ledger.
type AuditRecorder interface {
	Record(ctx context.Context, input auditDomain.RecordInput) (*auditDomain.Event, error)
}

// IdentityUseCase manages identities and issues their credentials.
type IdentityUseCase interface {
	// Create registers an identity under the configured trust domain. Identities
	// with a SPIFFE ID also receive a one hour credential.
	Create(ctx context.Context, input *domain.CreateIdentityInput) (*domain.CreateIdentityOutput, error)

	// List returns identities in registration order.
	List(ctx context.Context) ([]*domain.Identity, error)

	// Get returns the identity or domain.ErrIdentityNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error)

	// FindBySpiffeID returns the identity owning uri or domain.ErrIdentityNotFound.
	FindBySpiffeID(ctx context.Context, uri string) (*domain.Identity, error)

	// Deactivate marks the identity inactive. Inactive identities cannot obtain credentials.
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Identity, error)

	// SetTrustLevel changes the identity's trust level.
	SetTrustLevel(ctx context.Context, id uuid.UUID, level domain.TrustLevel) (*domain.Identity, error)

	// IssueCredential issues an SVID valid for ttlHours. The identity must be
	// active and have a SPIFFE ID.
	IssueCredential(ctx context.Context, id uuid.UUID, ttlHours int) (*domain.Credential, error)

	// IssueToken issues a bearer token valid for ttlMinutes. The identity must be active.
	IssueToken(ctx context.Context, id uuid.UUID, ttlMinutes int) (*domain.IssuedToken, error)

	// ValidateToken returns the claims of a valid token.
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}
