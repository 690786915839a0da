package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a short-lived SVID-like credential bound to a SPIFFE ID.
// Credentials are returned to the caller and never stored.
type Credential struct {
	SpiffeID     string    `json:"spiffe_id"`
	CertPEM      string    `json:"cert_pem"`
	KeyPEM       string    `json:"key_pem"`
	BundlePEM    string    `json:"bundle_pem"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	SerialNumber string    `json:"serial_number"`
}

// IsValid reports whether now is strictly before ExpiresAt.
func (c *Credential) IsValid(now time.Time) bool {
	return now.Before(c.ExpiresAt)
}

// TTLSeconds returns the remaining lifetime in seconds, or 0 once expired.
func (c *Credential) TTLSeconds(now time.Time) int64 {
	if !c.IsValid(now) {
		return 0
	}
	return int64(c.ExpiresAt.Sub(now) / time.Second)
}

// Lifetime bounds for issued credentials and tokens.
const (
	DefaultCredentialTTLHours = 1
	MaxCredentialTTLHours     = 24
	DefaultTokenTTLMinutes    = 60
	MaxTokenTTLMinutes        = 24 * 60
)

// TokenClaims are the claims carried by a ZedID bearer token.
type TokenClaims struct {
	Subject    string     `json:"sub"`
	Issuer     string     `json:"iss"`
	Audience   []string   `json:"aud"`
	ExpiresAt  time.Time  `json:"exp"`
	IssuedAt   time.Time  `json:"iat"`
	TokenID    string     `json:"jti"`
	Name       string     `json:"name"`
	Namespace  string     `json:"namespace"`
	Kind       Kind       `json:"kind"`
	TrustLevel TrustLevel `json:"trust_level"`
	SpiffeID   *string    `json:"spiffe_id,omitempty"`
}

// IssuedToken is a signed token plus the claims callers need without parsing it.
type IssuedToken struct {
	Token      string
	TokenID    string
	IdentityID uuid.UUID
	Kind       Kind
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// ExpiresInSeconds returns the lifetime the token was issued with.
func (t *IssuedToken) ExpiresInSeconds() int64 {
	return int64(t.ExpiresAt.Sub(t.IssuedAt) / time.Second)
}
