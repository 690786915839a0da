package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/metrics"
	"github.com/sundacoder/ZedID/internal/policy/domain"
)

const metricsDomain = "policy"

func recordMetrics(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

type policyUseCaseWithMetrics struct {
	next    PolicyUseCase
	metrics metrics.BusinessMetrics
}

// NewPolicyUseCaseWithMetrics wraps a PolicyUseCase with metrics recording.
func NewPolicyUseCaseWithMetrics(useCase PolicyUseCase, m metrics.BusinessMetrics) PolicyUseCase {
	return &policyUseCaseWithMetrics{next: useCase, metrics: m}
}

func (p *policyUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.CreatePolicyInput,
) (*domain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Create(ctx, input)
	recordMetrics(ctx, p.metrics, "create", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) List(ctx context.Context, namespace string) ([]*domain.Policy, error) {
	start := time.Now()
	policies, err := p.next.List(ctx, namespace)
	recordMetrics(ctx, p.metrics, "list", start, err)
	return policies, err
}

func (p *policyUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Get(ctx, id)
	recordMetrics(ctx, p.metrics, "get", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) Review(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Review(ctx, id)
	recordMetrics(ctx, p.metrics, "review", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) Activate(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Activate(ctx, id)
	recordMetrics(ctx, p.metrics, "activate", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) Disable(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Disable(ctx, id)
	recordMetrics(ctx, p.metrics, "disable", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) Archive(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	start := time.Now()
	policy, err := p.next.Archive(ctx, id)
	recordMetrics(ctx, p.metrics, "archive", start, err)
	return policy, err
}

func (p *policyUseCaseWithMetrics) Revalidate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Policy, *domain.ValidationResult, error) {
	start := time.Now()
	policy, validation, err := p.next.Revalidate(ctx, id)
	recordMetrics(ctx, p.metrics, "revalidate", start, err)
	return policy, validation, err
}

type decisionUseCaseWithMetrics struct {
	next    DecisionUseCase
	metrics metrics.BusinessMetrics
}

// NewDecisionUseCaseWithMetrics wraps a DecisionUseCase with metrics recording.
// Successful evaluations are also counted by namespace and outcome.
func NewDecisionUseCaseWithMetrics(useCase DecisionUseCase, m metrics.BusinessMetrics) DecisionUseCase {
	return &decisionUseCaseWithMetrics{next: useCase, metrics: m}
}

func (d *decisionUseCaseWithMetrics) Evaluate(
	ctx context.Context,
	req *domain.DecisionRequest,
) (*domain.DecisionResponse, error) {
	start := time.Now()
	response, err := d.next.Evaluate(ctx, req)
	recordMetrics(ctx, d.metrics, "evaluate", start, err)
	if err == nil {
		d.metrics.RecordDecision(ctx, req.Namespace, response.Allowed)
	}
	return response, err
}

type generatorUseCaseWithMetrics struct {
	next    GeneratorUseCase
	metrics metrics.BusinessMetrics
}

// NewGeneratorUseCaseWithMetrics wraps a GeneratorUseCase with metrics recording.
// Token usage reported by the model router is counted per model.
func NewGeneratorUseCaseWithMetrics(useCase GeneratorUseCase, m metrics.BusinessMetrics) GeneratorUseCase {
	return &generatorUseCaseWithMetrics{next: useCase, metrics: m}
}

func (g *generatorUseCaseWithMetrics) Generate(
	ctx context.Context,
	input *domain.GenerateInput,
) (*domain.GenerateOutput, error) {
	start := time.Now()
	output, err := g.next.Generate(ctx, input)
	recordMetrics(ctx, g.metrics, "generate", start, err)
	if err == nil && output.TokensUsed != nil {
		g.metrics.RecordModelTokens(ctx, output.ModelUsed, *output.TokensUsed)
	}
	return output, err
}
