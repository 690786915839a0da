// Package mocks provides testify mocks of the policy use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sundacoder/ZedID/internal/policy/domain"
)

// MockPolicyUseCase is a mock implementation of PolicyUseCase.
type MockPolicyUseCase struct {
	mock.Mock
}

func (m *MockPolicyUseCase) policy(args mock.Arguments) (*domain.Policy, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}

func (m *MockPolicyUseCase) Create(ctx context.Context, input *domain.CreatePolicyInput) (*domain.Policy, error) {
	return m.policy(m.Called(ctx, input))
}

func (m *MockPolicyUseCase) List(ctx context.Context, namespace string) ([]*domain.Policy, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Policy), args.Error(1)
}

func (m *MockPolicyUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return m.policy(m.Called(ctx, id))
}

func (m *MockPolicyUseCase) Review(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return m.policy(m.Called(ctx, id))
}

func (m *MockPolicyUseCase) Activate(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return m.policy(m.Called(ctx, id))
}

func (m *MockPolicyUseCase) Disable(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return m.policy(m.Called(ctx, id))
}

func (m *MockPolicyUseCase) Archive(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	return m.policy(m.Called(ctx, id))
}

func (m *MockPolicyUseCase) Revalidate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Policy, *domain.ValidationResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Policy), args.Get(1).(*domain.ValidationResult), args.Error(2)
}

// MockDecisionUseCase is a mock implementation of DecisionUseCase.
type MockDecisionUseCase struct {
	mock.Mock
}

func (m *MockDecisionUseCase) Evaluate(
	ctx context.Context,
	req *domain.DecisionRequest,
) (*domain.DecisionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DecisionResponse), args.Error(1)
}

// MockGeneratorUseCase is a mock implementation of GeneratorUseCase.
type MockGeneratorUseCase struct {
	mock.Mock
}

func (m *MockGeneratorUseCase) Generate(
	ctx context.Context,
	input *domain.GenerateInput,
) (*domain.GenerateOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerateOutput), args.Error(1)
}

// MockRouter is a mock implementation of router.Router.
type MockRouter struct {
	mock.Mock
}

func (m *MockRouter) Route(ctx context.Context, prompt string, kind domain.Kind) (*domain.RouteResult, error) {
	args := m.Called(ctx, prompt, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteResult), args.Error(1)
}
