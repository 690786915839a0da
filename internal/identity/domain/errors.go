package domain

import (
	"github.com/sundacoder/ZedID/internal/errors"
)

// Identity and credential errors.
var (
	// ErrIdentityNotFound indicates no identity has the requested id.
	ErrIdentityNotFound = errors.Wrap(errors.ErrNotFound, "identity not found")

	// ErrInvalidSpiffeID indicates a malformed SPIFFE URI or one outside the trust domain.
	ErrInvalidSpiffeID = errors.Wrap(errors.ErrInvalidInput, "invalid SPIFFE ID")

	// ErrNoSpiffeID indicates a credential was requested for an identity without a SPIFFE ID.
	ErrNoSpiffeID = errors.Wrap(
		errors.ErrInvalidInput,
		"identity does not have a SPIFFE ID (human identities use JWT tokens)",
	)

	// ErrIdentityInactive indicates the identity has been deactivated.
	ErrIdentityInactive = errors.Wrap(errors.ErrForbidden, "identity is inactive")

	// ErrCredentialExpired indicates the credential is past its expiry.
	ErrCredentialExpired = errors.Wrap(errors.ErrUnauthorized, "credential expired")

	// ErrSigningFailed indicates the token signer could not produce a token.
	ErrSigningFailed = errors.Wrap(errors.ErrInternal, "token signing failed")

	// ErrTokenValidationFailed covers every reason a presented token is rejected.
	ErrTokenValidationFailed = errors.Wrap(errors.ErrUnauthorized, "token validation failed")

	// ErrCredentialIssueFailed indicates the credential backend could not issue.
	ErrCredentialIssueFailed = errors.Wrap(errors.ErrInternal, "credential issuance failed")
)
