package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	apperrors "github.com/sundacoder/ZedID/internal/errors"
	"github.com/sundacoder/ZedID/internal/policy/domain"
)

type policyUseCase struct {
	repo                         PolicyRepository
	audit                        AuditRecorder
	activationRequiresValidation bool
	logger                       *slog.Logger
}

// NewPolicyUseCase creates a PolicyUseCase. With activationRequiresValidation
// set, Activate refuses policies that fail validation.
func NewPolicyUseCase(
	repo PolicyRepository,
	audit AuditRecorder,
	activationRequiresValidation bool,
	logger *slog.Logger,
) PolicyUseCase {
	return &policyUseCase{
		repo:                         repo,
		audit:                        audit,
		activationRequiresValidation: activationRequiresValidation,
		logger:                       logger,
	}
}

// recordAudit appends an audit event, logging rather than returning ledger failures.
func recordAudit(ctx context.Context, audit AuditRecorder, logger *slog.Logger, input auditDomain.RecordInput) {
	if _, err := audit.Record(ctx, input); err != nil {
		logger.Error("failed to record audit event",
			slog.String("action", input.Action),
			slog.Any("error", err),
		)
	}
}

func policyResource(p *domain.Policy) string {
	return "policy/" + p.ID.String()
}

func validateKinds(kind domain.Kind, model domain.AccessModel) error {
	if err := kind.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	if err := model.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

func (p *policyUseCase) Create(ctx context.Context, input *domain.CreatePolicyInput) (*domain.Policy, error) {
	if err := validateKinds(input.Kind, input.AccessModel); err != nil {
		return nil, err
	}

	policy := domain.NewDraftPolicy(*input, auditDomain.ActorFromContext(ctx), time.Now().UTC())
	validation := domain.Validate(policy)
	policy.ValidationPassed = validation.Passed

	if err := p.repo.Add(ctx, policy); err != nil {
		return nil, apperrors.Wrap(err, "failed to store policy")
	}

	p.logger.Info("policy created",
		slog.String("policy_id", policy.ID.String()),
		slog.String("name", policy.Name),
		slog.Bool("validation_passed", validation.Passed),
	)
	recordAudit(ctx, p.audit, p.logger, auditDomain.RecordInput{
		Action:   "policy.create",
		Resource: policyResource(policy),
		Decision: auditDomain.DecisionAllow,
		Reason:   fmt.Sprintf("Policy created: %s (%s)", policy.Name, policy.Kind),
		Metadata: map[string]any{
			"namespace":         policy.Namespace,
			"kind":              string(policy.Kind),
			"validation_passed": validation.Passed,
		},
	})
	return policy, nil
}

func (p *policyUseCase) List(ctx context.Context, namespace string) ([]*domain.Policy, error) {
	return p.repo.List(ctx, namespace)
}

func (p *policyUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return p.repo.Get(ctx, id)
}

func (p *policyUseCase) Review(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return p.transition(ctx, id, domain.StatusReview)
}

func (p *policyUseCase) Activate(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return p.transition(ctx, id, domain.StatusActive)
}

func (p *policyUseCase) Disable(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return p.transition(ctx, id, domain.StatusDisabled)
}

func (p *policyUseCase) Archive(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return p.transition(ctx, id, domain.StatusArchived)
}

func (p *policyUseCase) transition(ctx context.Context, id uuid.UUID, next domain.Status) (*domain.Policy, error) {
	var gateFailed bool
	guard := func(current *domain.Policy) error {
		if current.Status == domain.StatusArchived {
			return domain.ErrPolicyArchived
		}
		if !current.Status.CanTransitionTo(next) {
			return apperrors.Wrapf(domain.ErrInvalidTransition, "%s to %s", current.Status, next)
		}
		if next == domain.StatusActive && p.activationRequiresValidation {
			if validation := domain.Validate(current); !validation.Passed {
				gateFailed = true
				return domain.ErrPolicyNotValidated
			}
		}
		return nil
	}

	action := "policy.status." + string(next)
	policy, updated, err := p.repo.Transition(ctx, id, next, guard)
	if err != nil {
		if policy == nil {
			return nil, err
		}
		if gateFailed && policy.ValidationPassed {
			if _, setErr := p.repo.SetValidation(ctx, id, false); setErr != nil {
				return nil, setErr
			}
		}
		recordAudit(ctx, p.audit, p.logger, auditDomain.RecordInput{
			Action:   action,
			Resource: policyResource(policy),
			Decision: auditDomain.DecisionDeny,
			Reason:   err.Error(),
			Metadata: map[string]any{"from": string(policy.Status), "to": string(next)},
		})
		return nil, err
	}

	p.logger.Info("policy status changed",
		slog.String("policy_id", id.String()),
		slog.String("from", string(policy.Status)),
		slog.String("to", string(next)),
	)
	recordAudit(ctx, p.audit, p.logger, auditDomain.RecordInput{
		Action:   action,
		Resource: policyResource(updated),
		Decision: auditDomain.DecisionAllow,
		Reason:   fmt.Sprintf("Policy %s moved from %s to %s", updated.Name, policy.Status, next),
		Metadata: map[string]any{"from": string(policy.Status), "to": string(next), "version": updated.Version},
	})
	return updated, nil
}

func (p *policyUseCase) Revalidate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Policy, *domain.ValidationResult, error) {
	policy, err := p.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	validation := domain.Validate(policy)
	updated, err := p.repo.SetValidation(ctx, id, validation.Passed)
	if err != nil {
		return nil, nil, err
	}

	decision := auditDomain.DecisionAllow
	if !validation.Passed {
		decision = auditDomain.DecisionDeny
	}
	recordAudit(ctx, p.audit, p.logger, auditDomain.RecordInput{
		Action:   "policy.validate",
		Resource: policyResource(updated),
		Decision: decision,
		Metadata: map[string]any{
			"errors":         len(validation.Errors),
			"warnings":       len(validation.Warnings),
			"coverage_score": validation.CoverageScore,
		},
	})
	return updated, &validation, nil
}
