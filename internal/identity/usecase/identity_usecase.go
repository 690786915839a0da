package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/sundacoder/ZedID/internal/audit/domain"
	apperrors "github.com/sundacoder/ZedID/internal/errors"
	"github.com/sundacoder/ZedID/internal/identity/domain"
	"github.com/sundacoder/ZedID/internal/identity/service"
)

type identityUseCase struct {
	repo        IdentityRepository
	credentials service.CredentialBackend
	tokens      service.TokenService
	audit       AuditRecorder
	trustDomain string
	logger      *slog.Logger
}

// NewIdentityUseCase creates an IdentityUseCase deriving SPIFFE IDs under trustDomain.
func NewIdentityUseCase(
	repo IdentityRepository,
	credentials service.CredentialBackend,
	tokens service.TokenService,
	audit AuditRecorder,
	trustDomain string,
	logger *slog.Logger,
) IdentityUseCase {
	return &identityUseCase{
		repo:        repo,
		credentials: credentials,
		tokens:      tokens,
		audit:       audit,
		trustDomain: trustDomain,
		logger:      logger,
	}
}

// record appends an audit event. The audited operation has already happened,
// so a ledger failure is logged and not returned.
func (i *identityUseCase) record(ctx context.Context, input auditDomain.RecordInput) {
	if _, err := i.audit.Record(ctx, input); err != nil {
		i.logger.Error("failed to record audit event",
			slog.String("action", input.Action),
			slog.Any("error", err),
		)
	}
}

func (i *identityUseCase) Create(
	ctx context.Context,
	input *domain.CreateIdentityInput,
) (*domain.CreateIdentityOutput, error) {
	if err := input.Kind.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	identity := domain.NewIdentity(*input, i.trustDomain, time.Now().UTC())
	if err := i.repo.Create(ctx, identity); err != nil {
		return nil, apperrors.Wrap(err, "failed to store identity")
	}

	output := &domain.CreateIdentityOutput{Identity: identity}
	if identity.SpiffeID != nil {
		ttl := domain.DefaultCredentialTTLHours * time.Hour
		cred, err := i.credentials.Issue(ctx, *identity.SpiffeID, ttl)
		if err != nil {
			i.logger.Warn("initial credential issuance failed",
				slog.String("identity_id", identity.ID.String()),
				slog.Any("error", err),
			)
		} else {
			output.Credential = cred
		}
	}

	i.record(ctx, auditDomain.RecordInput{
		IdentityID: identity.ID,
		Action:     "identity.create",
		Resource:   "identity/" + identity.ID.String(),
		Decision:   auditDomain.DecisionAllow,
		Reason:     fmt.Sprintf("Identity created: %s (%s)", identity.Name, identity.Kind),
		Metadata:   map[string]any{"namespace": identity.Namespace, "kind": string(identity.Kind)},
	})

	i.logger.Info("identity created",
		slog.String("identity_id", identity.ID.String()),
		slog.String("kind", string(identity.Kind)),
		slog.String("namespace", identity.Namespace),
	)
	return output, nil
}

func (i *identityUseCase) List(ctx context.Context) ([]*domain.Identity, error) {
	return i.repo.List(ctx)
}

func (i *identityUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	return i.repo.Get(ctx, id)
}

func (i *identityUseCase) FindBySpiffeID(ctx context.Context, uri string) (*domain.Identity, error) {
	return i.repo.GetBySpiffeID(ctx, uri)
}

func (i *identityUseCase) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	identity, err := i.repo.SetActive(ctx, id, false)
	if err != nil {
		return nil, err
	}

	i.record(ctx, auditDomain.RecordInput{
		IdentityID: id,
		Action:     "identity.deactivate",
		Resource:   "identity/" + id.String(),
		Decision:   auditDomain.DecisionAllow,
		Reason:     "Identity deactivated: " + identity.Name,
	})
	return identity, nil
}

func (i *identityUseCase) SetTrustLevel(
	ctx context.Context,
	id uuid.UUID,
	level domain.TrustLevel,
) (*domain.Identity, error) {
	if err := level.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	identity, err := i.repo.SetTrustLevel(ctx, id, level)
	if err != nil {
		return nil, err
	}

	i.record(ctx, auditDomain.RecordInput{
		IdentityID: id,
		Action:     "identity.trust_level.update",
		Resource:   "identity/" + id.String(),
		Decision:   auditDomain.DecisionAllow,
		Reason:     fmt.Sprintf("Trust level set to %s", level),
		Metadata:   map[string]any{"trust_level": level.String()},
	})
	return identity, nil
}

// issuable loads the identity and refuses inactive ones, recording the refusal.
func (i *identityUseCase) issuable(ctx context.Context, id uuid.UUID, action string) (*domain.Identity, error) {
	identity, err := i.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.IsActive {
		i.record(ctx, auditDomain.RecordInput{
			IdentityID: id,
			Action:     action,
			Resource:   "identity/" + id.String(),
			Decision:   auditDomain.DecisionDeny,
			Reason:     "Identity is inactive",
		})
		return nil, domain.ErrIdentityInactive
	}
	return identity, nil
}

func (i *identityUseCase) IssueCredential(
	ctx context.Context,
	id uuid.UUID,
	ttlHours int,
) (*domain.Credential, error) {
	if ttlHours < 1 || ttlHours > domain.MaxCredentialTTLHours {
		return nil, apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"ttl_hours must be between 1 and %d",
			domain.MaxCredentialTTLHours,
		)
	}

	identity, err := i.issuable(ctx, id, "identity.svid.issue")
	if err != nil {
		return nil, err
	}
	if identity.SpiffeID == nil {
		return nil, domain.ErrNoSpiffeID
	}

	cred, err := i.credentials.Issue(ctx, *identity.SpiffeID, time.Duration(ttlHours)*time.Hour)
	if err != nil {
		i.record(ctx, auditDomain.RecordInput{
			IdentityID: id,
			Action:     "identity.svid.issue",
			Resource:   *identity.SpiffeID,
			Decision:   auditDomain.DecisionError,
			Reason:     err.Error(),
		})
		return nil, err
	}

	i.record(ctx, auditDomain.RecordInput{
		IdentityID: id,
		Action:     "identity.svid.issue",
		Resource:   *identity.SpiffeID,
		Decision:   auditDomain.DecisionAllow,
		Metadata:   map[string]any{"serial_number": cred.SerialNumber, "ttl_hours": ttlHours},
	})
	return cred, nil
}

func (i *identityUseCase) IssueToken(
	ctx context.Context,
	id uuid.UUID,
	ttlMinutes int,
) (*domain.IssuedToken, error) {
	if ttlMinutes < 1 || ttlMinutes > domain.MaxTokenTTLMinutes {
		return nil, apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"ttl_minutes must be between 1 and %d",
			domain.MaxTokenTTLMinutes,
		)
	}

	identity, err := i.issuable(ctx, id, "identity.token.issue")
	if err != nil {
		return nil, err
	}

	token, err := i.tokens.Issue(identity, time.Duration(ttlMinutes)*time.Minute)
	if err != nil {
		i.record(ctx, auditDomain.RecordInput{
			IdentityID: id,
			Action:     "identity.token.issue",
			Resource:   "identity/" + id.String(),
			Decision:   auditDomain.DecisionError,
			Reason:     err.Error(),
		})
		return nil, err
	}

	i.record(ctx, auditDomain.RecordInput{
		IdentityID: id,
		Action:     "identity.token.issue",
		Resource:   "identity/" + id.String(),
		Decision:   auditDomain.DecisionAllow,
		Metadata:   map[string]any{"jti": token.TokenID, "ttl_minutes": ttlMinutes},
	})
	return token, nil
}

func (i *identityUseCase) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	return i.tokens.Validate(token)
}
