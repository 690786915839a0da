// Package mocks provides testify mocks of the identity use cases and services.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	"github.com/sundacoder/ZedID/internal/identity/domain"
)

// MockIdentityUseCase is a mock implementation of IdentityUseCase.
type MockIdentityUseCase struct {
	mock.Mock
}

func (m *MockIdentityUseCase) Create(
	ctx context.Context,
	input *domain.CreateIdentityInput,
) (*domain.CreateIdentityOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateIdentityOutput), args.Error(1)
}

func (m *MockIdentityUseCase) List(ctx context.Context) ([]*domain.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Identity), args.Error(1)
}

func (m *MockIdentityUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityUseCase) FindBySpiffeID(ctx context.Context, uri string) (*domain.Identity, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityUseCase) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityUseCase) SetTrustLevel(
	ctx context.Context,
	id uuid.UUID,
	level domain.TrustLevel,
) (*domain.Identity, error) {
	args := m.Called(ctx, id, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityUseCase) IssueCredential(
	ctx context.Context,
	id uuid.UUID,
	ttlHours int,
) (*domain.Credential, error) {
	args := m.Called(ctx, id, ttlHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockIdentityUseCase) IssueToken(
	ctx context.Context,
	id uuid.UUID,
	ttlMinutes int,
) (*domain.IssuedToken, error) {
	args := m.Called(ctx, id, ttlMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedToken), args.Error(1)
}

func (m *MockIdentityUseCase) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenClaims), args.Error(1)
}

// MockCredentialBackend is a mock implementation of service.CredentialBackend.
type MockCredentialBackend struct {
	mock.Mock
}

func (m *MockCredentialBackend) Issue(
	ctx context.Context,
	spiffeID string,
	ttl time.Duration,
) (*domain.Credential, error) {
	args := m.Called(ctx, spiffeID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialBackend) Verify(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(identity *domain.Identity, ttl time.Duration) (*domain.IssuedToken, error) {
	args := m.Called(identity, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedToken), args.Error(1)
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenClaims), args.Error(1)
}

// MockAuditRecorder is a mock implementation of AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(
	ctx context.Context,
	input auditDomain.RecordInput,
) (*auditDomain.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditDomain.Event), args.Error(1)
}
