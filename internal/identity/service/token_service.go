package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/identity/domain"
)

// zedIDClaims is the wire form of domain.TokenClaims.
type zedIDClaims struct {
	jwt.RegisteredClaims
	Name       string  `json:"name"`
	Namespace  string  `json:"namespace"`
	Kind       string  `json:"kind"`
	TrustLevel uint8   `json:"trust_level"`
	SpiffeID   *string `json:"spiffe_id,omitempty"`
}

// tokenService implements TokenService with HS256 JWTs.
type tokenService struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewTokenService creates a TokenService signing with secret. Tokens carry issuer
// as "iss" and audience as the only "aud" entry.
func NewTokenService(secret []byte, issuer, audience string) TokenService {
	return &tokenService{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Issue signs a token for identity. Claim timestamps are whole seconds, so
// exp - iat equals ttl exactly.
func (s *tokenService) Issue(identity *domain.Identity, ttl time.Duration) (*domain.IssuedToken, error) {
	if len(s.secret) == 0 {
		return nil, domain.ErrSigningFailed
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)
	tokenID := uuid.NewString()

	claims := zedIDClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        tokenID,
		},
		Name:       identity.Name,
		Namespace:  identity.Namespace,
		Kind:       string(identity.Kind),
		TrustLevel: uint8(identity.TrustLevel),
		SpiffeID:   identity.SpiffeID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, domain.ErrSigningFailed
	}

	return &domain.IssuedToken{
		Token:      signed,
		TokenID:    tokenID,
		IdentityID: identity.ID,
		Kind:       identity.Kind,
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
	}, nil
}

// Validate parses token and returns its claims.
func (s *tokenService) Validate(token string) (*domain.TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, domain.ErrTokenValidationFailed
	}

	var claims zedIDClaims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domain.ErrTokenValidationFailed
	}

	trustLevel := domain.TrustLevel(claims.TrustLevel)
	if trustLevel.Validate() != nil {
		return nil, domain.ErrTokenValidationFailed
	}

	result := &domain.TokenClaims{
		Subject:    claims.Subject,
		Issuer:     claims.Issuer,
		Audience:   claims.Audience,
		TokenID:    claims.ID,
		Name:       claims.Name,
		Namespace:  claims.Namespace,
		Kind:       domain.Kind(claims.Kind),
		TrustLevel: trustLevel,
		SpiffeID:   claims.SpiffeID,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.UTC()
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.UTC()
	}
	return result, nil
}
