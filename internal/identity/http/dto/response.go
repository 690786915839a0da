package dto

import (
	"fmt"
	"time"

	"github.com/sundacoder/ZedID/internal/identity/domain"
)

// IdentityResponse represents an identity in API responses.
type IdentityResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Kind           domain.Kind       `json:"kind"`
	TrustLevel     domain.TrustLevel `json:"trust_level"`
	SpiffeID       *string           `json:"spiffe_id"`
	Email          *string           `json:"email"`
	Namespace      string            `json:"namespace"`
	Labels         map[string]string `json:"labels"`
	CreatedAt      time.Time         `json:"created_at"`
	LastSeen       time.Time         `json:"last_seen"`
	IsActive       bool              `json:"is_active"`
	SvidExpiry     *time.Time        `json:"svid_expiry"`
	SvidValid      bool              `json:"svid_valid"`
	SvidTTLSeconds int64             `json:"svid_ttl_seconds"`
}

// MapIdentityToResponse converts a domain identity to an API response.
func MapIdentityToResponse(identity *domain.Identity, now time.Time) IdentityResponse {
	return IdentityResponse{
		ID:             identity.ID.String(),
		Name:           identity.Name,
		Kind:           identity.Kind,
		TrustLevel:     identity.TrustLevel,
		SpiffeID:       identity.SpiffeID,
		Email:          identity.Email,
		Namespace:      identity.Namespace,
		Labels:         identity.Labels,
		CreatedAt:      identity.CreatedAt,
		LastSeen:       identity.LastSeen,
		IsActive:       identity.IsActive,
		SvidExpiry:     identity.SvidExpiry,
		SvidValid:      identity.IsSvidValid(now),
		SvidTTLSeconds: identity.SvidTTLSeconds(now),
	}
}

// ListIdentitiesResponse lists every identity in registration order.
type ListIdentitiesResponse struct {
	Identities  []IdentityResponse `json:"identities"`
	Total       int                `json:"total"`
	TrustDomain string             `json:"trust_domain"`
}

// MapIdentitiesToListResponse converts domain identities to a list API response.
func MapIdentitiesToListResponse(
	identities []*domain.Identity,
	trustDomain string,
	now time.Time,
) ListIdentitiesResponse {
	responses := make([]IdentityResponse, 0, len(identities))
	for _, identity := range identities {
		responses = append(responses, MapIdentityToResponse(identity, now))
	}
	return ListIdentitiesResponse{
		Identities:  responses,
		Total:       len(responses),
		TrustDomain: trustDomain,
	}
}

// CredentialResponse represents an SVID in API responses.
type CredentialResponse struct {
	SpiffeID     string    `json:"spiffe_id"`
	CertPEM      string    `json:"cert_pem"`
	KeyPEM       string    `json:"key_pem"` //nolint:gosec // placeholder material returned to its owner
	BundlePEM    string    `json:"bundle_pem"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	SerialNumber string    `json:"serial_number"`
	TTLSeconds   int64     `json:"ttl_seconds"`
}

// MapCredentialToResponse converts a domain credential to an API response.
func MapCredentialToResponse(cred *domain.Credential, now time.Time) CredentialResponse {
	return CredentialResponse{
		SpiffeID:     cred.SpiffeID,
		CertPEM:      cred.CertPEM,
		KeyPEM:       cred.KeyPEM,
		BundlePEM:    cred.BundlePEM,
		IssuedAt:     cred.IssuedAt,
		ExpiresAt:    cred.ExpiresAt,
		SerialNumber: cred.SerialNumber,
		TTLSeconds:   cred.TTLSeconds(now),
	}
}

// CreateIdentityResponse is returned once an identity is registered. SVID is
// null for humans and when the initial issuance failed.
type CreateIdentityResponse struct {
	Message  string              `json:"message"`
	SVID     *CredentialResponse `json:"svid"`
	Identity IdentityResponse    `json:"identity"`
}

// MapCreateOutputToResponse converts the create use case output to an API response.
func MapCreateOutputToResponse(output *domain.CreateIdentityOutput, now time.Time) CreateIdentityResponse {
	response := CreateIdentityResponse{
		Message:  fmt.Sprintf("Identity '%s' created successfully", output.Identity.Name),
		Identity: MapIdentityToResponse(output.Identity, now),
	}
	if output.Credential != nil {
		svid := MapCredentialToResponse(output.Credential, now)
		response.SVID = &svid
	}
	return response
}

// SvidResponse is a freshly issued SVID for an identity.
type SvidResponse struct {
	IdentityID string             `json:"identity_id"`
	SpiffeID   string             `json:"spiffe_id"`
	SVID       CredentialResponse `json:"svid"`
}

// TokenResponse is a freshly issued bearer token.
type TokenResponse struct {
	Token            string      `json:"token"` //nolint:gosec // returned once on issuance
	TokenID          string      `json:"token_id"`
	ExpiresAt        time.Time   `json:"expires_at"`
	ExpiresInSeconds int64       `json:"expires_in_seconds"`
	IdentityID       string      `json:"identity_id"`
	Kind             domain.Kind `json:"kind"`
}

// MapTokenToResponse converts an issued token to an API response.
func MapTokenToResponse(token *domain.IssuedToken) TokenResponse {
	return TokenResponse{
		Token:            token.Token,
		TokenID:          token.TokenID,
		ExpiresAt:        token.ExpiresAt,
		ExpiresInSeconds: token.ExpiresInSeconds(),
		IdentityID:       token.IdentityID.String(),
		Kind:             token.Kind,
	}
}

// TokenClaimsResponse reports the claims of a valid token.
type TokenClaimsResponse struct {
	Valid  bool                `json:"valid"`
	Claims *domain.TokenClaims `json:"claims"`
}
