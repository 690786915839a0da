// Package dto provides the request and response bodies of the identity API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/sundacoder/ZedID/internal/identity/domain"
	customValidation "github.com/sundacoder/ZedID/internal/validation"
)

// CreateIdentityRequest registers a new identity. The trust domain always
// comes from server configuration.
type CreateIdentityRequest struct {
	Name      string            `json:"name"`
	Kind      domain.Kind       `json:"kind"`
	Namespace string            `json:"namespace"`
	Email     *string           `json:"email,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// Validate checks if the create identity request is valid.
func (r *CreateIdentityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.PathSegment,
			validation.Length(1, 128),
		),
		validation.Field(&r.Kind,
			validation.Required,
			customValidation.OneOf(
				domain.KindHuman,
				domain.KindWorkload,
				domain.KindAIAgent,
				domain.KindServiceAccount,
			),
		),
		validation.Field(&r.Namespace,
			validation.Required,
			customValidation.PathSegment,
			validation.Length(1, 63),
		),
		validation.Field(&r.Email, validation.NilOrNotEmpty, customValidation.Email),
	)
}

// ToInput converts the request into the use case input.
func (r *CreateIdentityRequest) ToInput() *domain.CreateIdentityInput {
	return &domain.CreateIdentityInput{
		Kind:      r.Kind,
		Name:      r.Name,
		Namespace: r.Namespace,
		Email:     r.Email,
		Labels:    r.Labels,
	}
}

// IssueTokenRequest asks for a bearer token. An empty body uses the default lifetime.
type IssueTokenRequest struct {
	TTLMinutes *int `json:"ttl_minutes,omitempty"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TTLMinutes,
			validation.Min(1),
			validation.Max(domain.MaxTokenTTLMinutes),
		),
	)
}

// TTL returns the requested lifetime in minutes or the default.
func (r *IssueTokenRequest) TTL() int {
	if r.TTLMinutes == nil {
		return domain.DefaultTokenTTLMinutes
	}
	return *r.TTLMinutes
}

// SetTrustLevelRequest changes an identity's trust level by name.
type SetTrustLevelRequest struct {
	TrustLevel *domain.TrustLevel `json:"trust_level"`
}

// Validate checks if the set trust level request is valid.
func (r *SetTrustLevelRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TrustLevel, validation.NotNil),
	)
}

// ValidateTokenRequest carries a bearer token to check.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the validate token request is valid.
func (r *ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank),
	)
}
