package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	auditRepository "github.com/sundacoder/ZedID/internal/audit/repository"
	auditService "github.com/sundacoder/ZedID/internal/audit/service"
	auditUseCase "github.com/sundacoder/ZedID/internal/audit/usecase"
	apperrors "github.com/sundacoder/ZedID/internal/errors"
	"github.com/sundacoder/ZedID/internal/identity/domain"
	"github.com/sundacoder/ZedID/internal/identity/repository"
	"github.com/sundacoder/ZedID/internal/identity/service"
	"github.com/sundacoder/ZedID/internal/identity/usecase"
	usecaseMocks "github.com/sundacoder/ZedID/internal/identity/usecase/mocks"
	metricsMocks "github.com/sundacoder/ZedID/internal/metrics/mocks"
)

const testTrustDomain = "tetrate.io"

type fixture struct {
	useCase usecase.IdentityUseCase
	repo    *repository.MemoryIdentityRepository
	audit   auditUseCase.AuditUseCase
	tokens  service.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	signer, err := auditService.NewSigner([]byte("audit-test-key"))
	require.NoError(t, err)
	audit := auditUseCase.NewAuditUseCase(auditRepository.NewMemoryEventRepository(), signer)

	repo := repository.NewMemoryIdentityRepository()
	tokens := service.NewTokenService([]byte("test-secret"), "zedid.tetrate.io", "zedid-api")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		useCase: usecase.NewIdentityUseCase(
			repo,
			service.NewDemoCredentialBackend(testTrustDomain),
			tokens,
			audit,
			testTrustDomain,
			logger,
		),
		repo:   repo,
		audit:  audit,
		tokens: tokens,
	}
}

func (f *fixture) actions(t *testing.T) []string {
	t.Helper()
	events, _, err := f.audit.Recent(context.Background(), 0)
	require.NoError(t, err)
	actions := make([]string, 0, len(events))
	for _, event := range events {
		actions = append(actions, event.Action)
	}
	return actions
}

func (f *fixture) create(t *testing.T, kind domain.Kind, name, namespace string) *domain.Identity {
	t.Helper()
	output, err := f.useCase.Create(context.Background(), &domain.CreateIdentityInput{
		Kind:      kind,
		Name:      name,
		Namespace: namespace,
	})
	require.NoError(t, err)
	return output.Identity
}

func TestIdentityUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_WorkloadGetsSpiffeIDAndInitialCredential", func(t *testing.T) {
		f := newFixture(t)

		output, err := f.useCase.Create(ctx, &domain.CreateIdentityInput{
			Kind:      domain.KindWorkload,
			Name:      "checkout",
			Namespace: "production",
			Labels:    map[string]string{"team": "payments"},
		})
		require.NoError(t, err)

		identity := output.Identity
		require.NotNil(t, identity.SpiffeID)
		assert.Equal(t, "spiffe://tetrate.io/ns/production/sa/checkout", *identity.SpiffeID)
		assert.Equal(t, domain.TrustHigh, identity.TrustLevel)
		assert.True(t, identity.IsActive)

		require.NotNil(t, output.Credential)
		assert.Equal(t, *identity.SpiffeID, output.Credential.SpiffeID)
		assert.Equal(t, time.Hour, output.Credential.ExpiresAt.Sub(output.Credential.IssuedAt))

		stored, err := f.repo.Get(ctx, identity.ID)
		require.NoError(t, err)
		assert.Equal(t, "payments", stored.Labels["team"])

		events, total, err := f.audit.Recent(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, "identity.create", events[0].Action)
		assert.Equal(t, "identity/"+identity.ID.String(), events[0].Resource)
		assert.Equal(t, auditDomain.DecisionAllow, events[0].Decision)
		assert.Equal(t, auditDomain.DefaultActor, events[0].Actor)
		require.NotNil(t, events[0].Reason)
		assert.Equal(t, "Identity created: checkout (workload)", *events[0].Reason)
	})

	t.Run("Success_HumanHasNoCredential", func(t *testing.T) {
		f := newFixture(t)

		output, err := f.useCase.Create(ctx, &domain.CreateIdentityInput{
			Kind:      domain.KindHuman,
			Name:      "carol",
			Namespace: "platform",
		})
		require.NoError(t, err)
		assert.Nil(t, output.Identity.SpiffeID)
		assert.Nil(t, output.Credential)
		require.NotNil(t, output.Identity.Email)
		assert.Equal(t, "carol@tetrate.io", *output.Identity.Email)
	})

	t.Run("Success_CredentialFailureDoesNotFailCreate", func(t *testing.T) {
		repo := repository.NewMemoryIdentityRepository()
		backend := &usecaseMocks.MockCredentialBackend{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		backend.On("Issue", ctx, "spiffe://tetrate.io/ns/ai-platform/agent/tars", time.Hour).
			Return(nil, domain.ErrCredentialIssueFailed).Once()
		recorder.On("Record", ctx, mock.MatchedBy(func(in auditDomain.RecordInput) bool {
			return in.Action == "identity.create"
		})).Return(&auditDomain.Event{}, nil).Once()

		uc := usecase.NewIdentityUseCase(repo, backend, &usecaseMocks.MockTokenService{}, recorder,
			testTrustDomain, slog.New(slog.NewTextHandler(io.Discard, nil)))

		output, err := uc.Create(ctx, &domain.CreateIdentityInput{
			Kind:      domain.KindAIAgent,
			Name:      "tars",
			Namespace: "ai-platform",
		})
		require.NoError(t, err)
		assert.Nil(t, output.Credential)
		assert.Equal(t, domain.TrustMedium, output.Identity.TrustLevel)

		backend.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("Success_AuditFailureIsNotReturned", func(t *testing.T) {
		recorder := &usecaseMocks.MockAuditRecorder{}
		recorder.On("Record", ctx, mock.Anything).Return(nil, errors.New("ledger unavailable")).Once()

		uc := usecase.NewIdentityUseCase(repository.NewMemoryIdentityRepository(),
			service.NewDemoCredentialBackend(testTrustDomain), &usecaseMocks.MockTokenService{}, recorder,
			testTrustDomain, slog.New(slog.NewTextHandler(io.Discard, nil)))

		output, err := uc.Create(ctx, &domain.CreateIdentityInput{Kind: domain.KindHuman, Name: "dave"})
		require.NoError(t, err)
		assert.NotNil(t, output.Identity)
		recorder.AssertExpectations(t)
	})

	t.Run("Error_UnknownKind", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.useCase.Create(ctx, &domain.CreateIdentityInput{Kind: "robot", Name: "r2"})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Empty(t, f.actions(t))
	})
}

func TestIdentityUseCase_ListAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.create(t, domain.KindWorkload, "checkout", "production")
	second := f.create(t, domain.KindAIAgent, "tars", "ai-platform")

	t.Run("Success_ListInInsertionOrder", func(t *testing.T) {
		identities, err := f.useCase.List(ctx)
		require.NoError(t, err)
		require.Len(t, identities, 2)
		assert.Equal(t, first.ID, identities[0].ID)
		assert.Equal(t, second.ID, identities[1].ID)
	})

	t.Run("Success_Get", func(t *testing.T) {
		identity, err := f.useCase.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "tars", identity.Name)
	})

	t.Run("Success_FindBySpiffeID", func(t *testing.T) {
		identity, err := f.useCase.FindBySpiffeID(ctx, "spiffe://tetrate.io/ns/ai-platform/agent/tars")
		require.NoError(t, err)
		assert.Equal(t, second.ID, identity.ID)
	})

	t.Run("Error_GetUnknown", func(t *testing.T) {
		_, err := f.useCase.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	})
}

func TestIdentityUseCase_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindWorkload, "payment", "production")

		updated, err := f.useCase.Deactivate(ctx, identity.ID)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Equal(t, []string{"identity.deactivate", "identity.create"}, f.actions(t))
	})

	t.Run("Error_Unknown", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.useCase.Deactivate(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	})
}

func TestIdentityUseCase_SetTrustLevel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindAIAgent, "anomaly-detector", "ai-platform")

		updated, err := f.useCase.SetTrustLevel(ctx, identity.ID, domain.TrustLow)
		require.NoError(t, err)
		assert.Equal(t, domain.TrustLow, updated.TrustLevel)
	})

	t.Run("Error_OutOfRange", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindAIAgent, "anomaly-detector", "ai-platform")

		_, err := f.useCase.SetTrustLevel(ctx, identity.ID, domain.TrustLevel(9))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestIdentityUseCase_IssueCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RequestedTTL", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindWorkload, "inventory", "production")

		cred, err := f.useCase.IssueCredential(ctx, identity.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, *identity.SpiffeID, cred.SpiffeID)
		assert.Equal(t, 4*time.Hour, cred.ExpiresAt.Sub(cred.IssuedAt))
		assert.True(t, cred.IsValid(time.Now()))

		stored, err := f.repo.Get(ctx, identity.ID)
		require.NoError(t, err)
		assert.Equal(t, identity, stored)
		assert.Equal(t, []string{"identity.svid.issue", "identity.create"}, f.actions(t))
	})

	t.Run("Error_HumanHasNoSpiffeID", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindHuman, "alice", "platform")

		_, err := f.useCase.IssueCredential(ctx, identity.ID, 1)
		assert.ErrorIs(t, err, domain.ErrNoSpiffeID)
	})

	t.Run("Error_Inactive", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindWorkload, "legacy", "production")
		_, err := f.useCase.Deactivate(ctx, identity.ID)
		require.NoError(t, err)

		_, err = f.useCase.IssueCredential(ctx, identity.ID, 1)
		assert.ErrorIs(t, err, domain.ErrIdentityInactive)

		events, _, err := f.audit.Recent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "identity.svid.issue", events[0].Action)
		assert.Equal(t, auditDomain.DecisionDeny, events[0].Decision)
	})

	t.Run("Error_Unknown", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.useCase.IssueCredential(ctx, uuid.Must(uuid.NewV7()), 1)
		assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	})

	t.Run("Error_TTLOutOfRange", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindWorkload, "checkout", "production")

		for _, ttl := range []int{0, -1, domain.MaxCredentialTTLHours + 1} {
			_, err := f.useCase.IssueCredential(ctx, identity.ID, ttl)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), ttl)
		}
	})
}

func TestIdentityUseCase_IssueToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindHuman, "bob", "production")

		issued, err := f.useCase.IssueToken(ctx, identity.ID, domain.DefaultTokenTTLMinutes)
		require.NoError(t, err)
		assert.NotEmpty(t, issued.TokenID)

		claims, err := f.useCase.ValidateToken(ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, identity.ID.String(), claims.Subject)
		assert.Equal(t, "bob", claims.Name)
		assert.Equal(t, domain.KindHuman, claims.Kind)
		assert.Equal(t, domain.TrustMedium, claims.TrustLevel)
		assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
		assert.Equal(t, []string{"identity.token.issue", "identity.create"}, f.actions(t))
	})

	t.Run("Error_SigningFailureIsAudited", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindWorkload, "auth", "platform")

		tokens := &usecaseMocks.MockTokenService{}
		tokens.On("Issue", mock.AnythingOfType("*domain.Identity"), 30*time.Minute).
			Return(nil, domain.ErrSigningFailed).Once()
		uc := usecase.NewIdentityUseCase(f.repo, service.NewDemoCredentialBackend(testTrustDomain),
			tokens, f.audit, testTrustDomain, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := uc.IssueToken(ctx, identity.ID, 30)
		assert.ErrorIs(t, err, domain.ErrSigningFailed)

		events, _, err := f.audit.Recent(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, auditDomain.DecisionError, events[0].Decision)
		tokens.AssertExpectations(t)
	})

	t.Run("Error_Inactive", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindHuman, "mallory", "production")
		_, err := f.useCase.Deactivate(ctx, identity.ID)
		require.NoError(t, err)

		_, err = f.useCase.IssueToken(ctx, identity.ID, 10)
		assert.ErrorIs(t, err, domain.ErrIdentityInactive)
	})

	t.Run("Error_TTLOutOfRange", func(t *testing.T) {
		f := newFixture(t)
		identity := f.create(t, domain.KindHuman, "bob", "production")

		_, err := f.useCase.IssueToken(ctx, identity.ID, domain.MaxTokenTTLMinutes+1)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_ValidateGarbage", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.useCase.ValidateToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrTokenValidationFailed)
	})
}

func TestIdentityUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())

	t.Run("Success_RecordsOperation", func(t *testing.T) {
		next := &usecaseMocks.MockIdentityUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		identity := &domain.Identity{ID: id}
		next.On("Get", ctx, id).Return(identity, nil).Once()
		m.ExpectOperation(ctx, "identity", "get", "success")

		got, err := usecase.NewIdentityUseCaseWithMetrics(next, m).Get(ctx, id)
		require.NoError(t, err)
		assert.Same(t, identity, got)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorStatus", func(t *testing.T) {
		next := &usecaseMocks.MockIdentityUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		next.On("IssueToken", ctx, id, 60).Return(nil, domain.ErrIdentityInactive).Once()
		m.ExpectOperation(ctx, "identity", "issue_token", "error")

		_, err := usecase.NewIdentityUseCaseWithMetrics(next, m).IssueToken(ctx, id, 60)
		assert.ErrorIs(t, err, domain.ErrIdentityInactive)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})
}
