// Package mocks provides a testify mock of metrics.BusinessMetrics.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *MockBusinessMetrics) RecordDecision(ctx context.Context, namespace string, allowed bool) {
	m.Called(ctx, namespace, allowed)
}

func (m *MockBusinessMetrics) RecordModelTokens(ctx context.Context, model string, tokens int) {
	m.Called(ctx, model, tokens)
}

// ExpectOperation registers the RecordOperation and RecordDuration calls a
// use case decorator makes for one operation.
func (m *MockBusinessMetrics) ExpectOperation(ctx any, domain, operation, status string) {
	m.On("RecordOperation", ctx, domain, operation, status).Return().Once()
	m.On("RecordDuration", ctx, domain, operation, mock.AnythingOfType("time.Duration"), status).Return().Once()
}
