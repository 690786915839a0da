// Package mocks provides testify mocks of the audit use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sundacoder/ZedID/internal/audit/domain"
)

// MockAuditUseCase is a mock implementation of AuditUseCase.
type MockAuditUseCase struct {
	mock.Mock
}

func (m *MockAuditUseCase) Record(ctx context.Context, input domain.RecordInput) (*domain.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockAuditUseCase) Recent(ctx context.Context, limit int) ([]*domain.Event, int, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Event), args.Int(1), args.Error(2)
}

func (m *MockAuditUseCase) Stats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockAuditUseCase) Verify(ctx context.Context) (*domain.VerifyReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifyReport), args.Error(1)
}
