// Package usecase implements policy lifecycle, access decisions and AI policy generation.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	identityDomain "github.com/sundacoder/ZedID/internal/identity/domain"
	"github.com/sundacoder/ZedID/internal/policy/domain"
)

// PolicyRepository stores policies in decision order.
type PolicyRepository interface {
	Add(ctx context.Context, policy *domain.Policy) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Policy, error)
	List(ctx context.Context, namespace string) ([]*domain.Policy, error)
	Applicable(ctx context.Context, namespace string) ([]*domain.Policy, error)
	Transition(
		ctx context.Context,
		id uuid.UUID,
		next domain.Status,
		guard func(current *domain.Policy) error,
	) (before, after *domain.Policy, err error)
	SetValidation(ctx context.Context, id uuid.UUID, passed bool) (*domain.Policy, error)
}

// AuditRecorder appends to the audit ledger.
type AuditRecorder interface {
	Record(ctx context.Context, input auditDomain.RecordInput) (*auditDomain.Event, error)
}

// IdentityResolver finds the registered identity behind a decision subject.
type IdentityResolver interface {
	FindBySpiffeID(ctx context.Context, uri string) (*identityDomain.Identity, error)
}

// PolicyUseCase manages the policy lifecycle.
type PolicyUseCase interface {
	// Create stores input as a validated Draft policy.
	Create(ctx context.Context, input *domain.CreatePolicyInput) (*domain.Policy, error)

	// List returns policies in decision order, restricted to namespace when non-empty.
	List(ctx context.Context, namespace string) ([]*domain.Policy, error)

	// Get returns the policy or domain.ErrPolicyNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Policy, error)

	// Review moves the policy to review.
	Review(ctx context.Context, id uuid.UUID) (*domain.Policy, error)

	// Activate makes the policy take part in decisions. When the activation
	// gate is on, a policy failing validation is refused with domain.ErrPolicyNotValidated.
	Activate(ctx context.Context, id uuid.UUID) (*domain.Policy, error)

	// Disable takes the policy out of decisions.
	Disable(ctx context.Context, id uuid.UUID) (*domain.Policy, error)

	// Archive retires the policy for good.
	Archive(ctx context.Context, id uuid.UUID) (*domain.Policy, error)

	// Revalidate runs the validator again and records the outcome on the policy.
	Revalidate(ctx context.Context, id uuid.UUID) (*domain.Policy, *domain.ValidationResult, error)
}

// DecisionUseCase answers access requests.
type DecisionUseCase interface {
	// Evaluate decides req against the active policies of its namespace and the
	// system namespace. Every decision is audited.
	Evaluate(ctx context.Context, req *domain.DecisionRequest) (*domain.DecisionResponse, error)
}

// GeneratorUseCase turns natural-language intent into Draft policies.
type GeneratorUseCase interface {
	// Generate routes the intent through the model router, then validates and stores the result.
	Generate(ctx context.Context, input *domain.GenerateInput) (*domain.GenerateOutput, error)
}
