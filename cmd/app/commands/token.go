package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sundacoder/ZedID/internal/identity/domain"
	"github.com/sundacoder/ZedID/internal/identity/service"
)

// RunMintToken issues a bearer token offline for an identity derived from
// input under trustDomain. The identity is not registered anywhere; the token
// is accepted by any server sharing the signing secret.
func RunMintToken(
	ctx context.Context,
	tokenService service.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	trustDomain string,
	input domain.CreateIdentityInput,
	ttlMinutes int,
	format string,
) error {
	if err := input.Kind.Validate(); err != nil {
		return err
	}
	if input.Name == "" || input.Namespace == "" {
		return fmt.Errorf("--name and --namespace are required")
	}
	if ttlMinutes < 1 || ttlMinutes > domain.MaxTokenTTLMinutes {
		return fmt.Errorf("--ttl-minutes must be between 1 and %d", domain.MaxTokenTTLMinutes)
	}

	identity := domain.NewIdentity(input, trustDomain, time.Now().UTC())

	issued, err := tokenService.Issue(identity, time.Duration(ttlMinutes)*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to mint token: %w", err)
	}

	logger.InfoContext(ctx, "token minted",
		slog.String("identity_id", identity.ID.String()),
		slog.String("token_id", issued.TokenID),
		slog.String("kind", string(identity.Kind)),
		slog.Time("expires_at", issued.ExpiresAt),
	)

	if format == "json" {
		result := map[string]any{
			"access_token": issued.Token,
			"token_type":   "Bearer",
			"expires_in":   issued.ExpiresInSeconds(),
			"token_id":     issued.TokenID,
			"identity_id":  identity.ID.String(),
			"spiffe_id":    identity.SpiffeID,
		}
		if err := writeJSON(writer, result); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
		return nil
	}

	_, _ = fmt.Fprintf(writer, "# Token for %s/%s (%s), expires %s\n",
		identity.Namespace,
		identity.Name,
		identity.Kind,
		issued.ExpiresAt.Format(time.RFC3339),
	)
	if identity.SpiffeID != nil {
		_, _ = fmt.Fprintf(writer, "# SPIFFE ID: %s\n", *identity.SpiffeID)
	}
	_, _ = fmt.Fprintf(writer, "ZEDID_TOKEN=\"%s\"\n", issued.Token)
	return nil
}

// RunVerifyToken validates token with the configured secret, issuer and
// audience and prints its claims.
func RunVerifyToken(
	ctx context.Context,
	tokenService service.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	format string,
) error {
	claims, err := tokenService.Validate(token)
	if err != nil {
		logger.WarnContext(ctx, "token rejected", slog.Any("error", err))
		return err
	}

	if format == "json" {
		if err := writeJSON(writer, claims); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
		return nil
	}

	_, _ = fmt.Fprintf(writer, "Token Verification\n")
	_, _ = fmt.Fprintf(writer, "==================\n\n")
	_, _ = fmt.Fprintf(writer, "Subject:      %s\n", claims.Subject)
	_, _ = fmt.Fprintf(writer, "Name:         %s\n", claims.Name)
	_, _ = fmt.Fprintf(writer, "Namespace:    %s\n", claims.Namespace)
	_, _ = fmt.Fprintf(writer, "Kind:         %s\n", claims.Kind)
	_, _ = fmt.Fprintf(writer, "Trust Level:  %s\n", claims.TrustLevel)
	if claims.SpiffeID != nil {
		_, _ = fmt.Fprintf(writer, "SPIFFE ID:    %s\n", *claims.SpiffeID)
	}
	_, _ = fmt.Fprintf(writer, "Issuer:       %s\n", claims.Issuer)
	_, _ = fmt.Fprintf(writer, "Token ID:     %s\n", claims.TokenID)
	_, _ = fmt.Fprintf(writer, "Expires At:   %s\n\n", claims.ExpiresAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(writer, "Status: VALID\n")
	return nil
}
