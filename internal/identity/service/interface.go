// Package service provides the credential issuing collaborators of the identity
// module: the SVID backend, the bearer token signer and the KMS keeper used to
// unwrap the signing secret.
package service

import (
	"context"
	"time"

	"github.com/sundacoder/ZedID/internal/identity/domain"
)

// CredentialBackend issues and verifies SVID-like credentials. The demo backend
// and a real CA or SPIRE integration are interchangeable behind it.
type CredentialBackend interface {
	// Issue returns a credential for spiffeID valid for exactly ttl.
	// Malformed or foreign identifiers yield domain.ErrInvalidSpiffeID.
	Issue(ctx context.Context, spiffeID string, ttl time.Duration) (*domain.Credential, error)

	// Verify checks that cred belongs to the trust domain and has not expired.
	Verify(ctx context.Context, cred *domain.Credential) error
}

// TokenService signs and validates bearer tokens.
type TokenService interface {
	// Issue signs a token for identity valid for ttl.
	Issue(identity *domain.Identity, ttl time.Duration) (*domain.IssuedToken, error)

	// Validate checks signature, algorithm, expiry, issuer and audience. Every
	// failure is reported as domain.ErrTokenValidationFailed.
	Validate(token string) (*domain.TokenClaims, error)
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap secrets.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers from gocloud.dev/secrets URIs.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
