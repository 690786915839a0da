package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	"github.com/sundacoder/ZedID/internal/policy/domain"
)

type decisionUseCase struct {
	repo       PolicyRepository
	identities IdentityResolver
	audit      AuditRecorder
	logger     *slog.Logger
}

// NewDecisionUseCase creates a DecisionUseCase. identities may be nil, in which
// case decisions are audited without identity attribution.
func NewDecisionUseCase(
	repo PolicyRepository,
	identities IdentityResolver,
	audit AuditRecorder,
	logger *slog.Logger,
) DecisionUseCase {
	return &decisionUseCase{repo: repo, identities: identities, audit: audit, logger: logger}
}

func (d *decisionUseCase) Evaluate(
	ctx context.Context,
	req *domain.DecisionRequest,
) (*domain.DecisionResponse, error) {
	start := time.Now()

	policies, err := d.repo.Applicable(ctx, req.Namespace)
	if err != nil {
		return nil, err
	}
	evaluation := domain.Evaluate(policies, req)

	response := &domain.DecisionResponse{
		Allowed:        evaluation.Allowed,
		Reason:         evaluation.Reason,
		EvaluationTime: time.Since(start),
		DecisionID:     uuid.Must(uuid.NewV7()),
	}
	metadata := map[string]any{
		"subject":     req.Subject,
		"action":      req.Action,
		"namespace":   req.Namespace,
		"decision_id": response.DecisionID.String(),
	}
	if evaluation.Policy != nil {
		policyID := evaluation.Policy.ID
		policyName := evaluation.Policy.Name
		response.PolicyID = &policyID
		response.PolicyName = &policyName
		metadata["policy_id"] = policyID.String()
	}

	decision := auditDomain.DecisionDeny
	if response.Allowed {
		decision = auditDomain.DecisionAllow
	}
	d.logger.Info("policy decision",
		slog.String("decision_id", response.DecisionID.String()),
		slog.String("subject", req.Subject),
		slog.String("resource", req.Resource),
		slog.String("action", req.Action),
		slog.String("namespace", req.Namespace),
		slog.Bool("allowed", response.Allowed),
	)
	recordAudit(ctx, d.audit, d.logger, auditDomain.RecordInput{
		IdentityID: d.subjectIdentity(ctx, req.Subject),
		Action:     "policy.evaluate",
		Resource:   req.Resource,
		Decision:   decision,
		Reason:     response.Reason,
		Metadata:   metadata,
	})
	return response, nil
}

// subjectIdentity returns the id of the registered identity whose SPIFFE ID
// is subject, or uuid.Nil.
func (d *decisionUseCase) subjectIdentity(ctx context.Context, subject string) uuid.UUID {
	if d.identities == nil {
		return uuid.Nil
	}
	identity, err := d.identities.FindBySpiffeID(ctx, subject)
	if err != nil {
		return uuid.Nil
	}
	return identity.ID
}
