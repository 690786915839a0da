package usecase

import (
	"context"
	"log/slog"
	"time"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	apperrors "github.com/sundacoder/ZedID/internal/errors"
	"github.com/sundacoder/ZedID/internal/policy/domain"
	"github.com/sundacoder/ZedID/internal/policy/router"
)

type generatorUseCase struct {
	repo   PolicyRepository
	router router.Router
	audit  AuditRecorder
	logger *slog.Logger
}

// NewGeneratorUseCase creates a GeneratorUseCase sending prompts through r.
func NewGeneratorUseCase(
	repo PolicyRepository,
	r router.Router,
	audit AuditRecorder,
	logger *slog.Logger,
) GeneratorUseCase {
	return &generatorUseCase{repo: repo, router: r, audit: audit, logger: logger}
}

func (g *generatorUseCase) Generate(ctx context.Context, input *domain.GenerateInput) (*domain.GenerateOutput, error) {
	if err := validateKinds(input.Kind, input.AccessModel); err != nil {
		return nil, err
	}

	start := time.Now()
	g.logger.Info("policy generation requested",
		slog.String("kind", string(input.Kind)),
		slog.String("namespace", input.Namespace),
	)

	result, err := g.router.Route(ctx, domain.BuildPrompt(input), input.Kind)
	if err != nil {
		g.logger.Warn("policy generation failed", slog.Any("error", err))
		recordAudit(ctx, g.audit, g.logger, auditDomain.RecordInput{
			Action:   "policy.generate",
			Resource: "namespace/" + input.Namespace,
			Decision: auditDomain.DecisionError,
			Reason:   err.Error(),
			Metadata: map[string]any{"kind": string(input.Kind)},
		})
		return nil, err
	}

	policy := domain.NewGeneratedPolicy(input, result, auditDomain.ActorFromContext(ctx), time.Now().UTC())
	validation := domain.Validate(policy)
	policy.ValidationPassed = validation.Passed

	if err := g.repo.Add(ctx, policy); err != nil {
		return nil, apperrors.Wrap(err, "failed to store generated policy")
	}

	output := &domain.GenerateOutput{
		Policy:         policy,
		Validation:     validation,
		GenerationTime: time.Since(start),
		ModelUsed:      result.Model,
		TokensUsed:     result.Tokens,
	}

	g.logger.Info("policy generated",
		slog.String("policy_id", policy.ID.String()),
		slog.String("name", policy.Name),
		slog.String("model", result.Model),
		slog.Bool("validation_passed", validation.Passed),
		slog.Duration("generation_time", output.GenerationTime),
	)
	metadata := map[string]any{
		"kind":              string(policy.Kind),
		"namespace":         policy.Namespace,
		"model":             result.Model,
		"validation_passed": validation.Passed,
	}
	if result.Tokens != nil {
		metadata["tokens"] = *result.Tokens
	}
	recordAudit(ctx, g.audit, g.logger, auditDomain.RecordInput{
		Action:   "policy.generate",
		Resource: policyResource(policy),
		Decision: auditDomain.DecisionAllow,
		Reason:   "Policy generated: " + policy.Name,
		Metadata: metadata,
	})
	return output, nil
}
