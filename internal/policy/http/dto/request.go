// Package dto provides the request and response bodies of the policy API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/sundacoder/ZedID/internal/policy/domain"
	customValidation "github.com/sundacoder/ZedID/internal/validation"
)

var (
	kindRule        = customValidation.OneOf(domain.Kinds...)
	accessModelRule = customValidation.OneOf(domain.AccessModels...)
	namespaceRules  = []validation.Rule{
		validation.Required,
		customValidation.PathSegment,
		validation.Length(1, 63),
	}
)

// CreatePolicyRequest submits a hand-written policy. It is always stored as a Draft.
type CreatePolicyRequest struct {
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Kind                  domain.Kind        `json:"kind"`
	AccessModel           domain.AccessModel `json:"access_model"`
	Content               string             `json:"content"`
	Explanation           string             `json:"explanation"`
	NaturalLanguageIntent *string            `json:"natural_language_intent,omitempty"`
	Namespace             string             `json:"namespace"`
	Subjects              []string           `json:"subjects"`
	Resources             []string           `json:"resources"`
	Actions               []string           `json:"actions"`
	Tags                  []string           `json:"tags"`
}

// Validate checks if the create policy request is valid.
func (r *CreatePolicyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 128),
		),
		validation.Field(&r.Kind, validation.Required, kindRule),
		validation.Field(&r.AccessModel, validation.Required, accessModelRule),
		validation.Field(&r.Namespace, namespaceRules...),
	)
}

// ToInput converts the request into the use case input.
func (r *CreatePolicyRequest) ToInput() *domain.CreatePolicyInput {
	return &domain.CreatePolicyInput{
		Name:                  r.Name,
		Description:           r.Description,
		Kind:                  r.Kind,
		AccessModel:           r.AccessModel,
		Content:               r.Content,
		Explanation:           r.Explanation,
		NaturalLanguageIntent: r.NaturalLanguageIntent,
		Namespace:             r.Namespace,
		Subjects:              r.Subjects,
		Resources:             r.Resources,
		Actions:               r.Actions,
		Tags:                  r.Tags,
	}
}

// GeneratePolicyRequest asks the model router for a policy. Omitted subject,
// resource and action lists are left out of the prompt.
type GeneratePolicyRequest struct {
	Intent      string             `json:"intent"`
	Kind        domain.Kind        `json:"kind"`
	AccessModel domain.AccessModel `json:"access_model"`
	Namespace   string             `json:"namespace"`
	Subjects    []string           `json:"subjects,omitempty"`
	Resources   []string           `json:"resources,omitempty"`
	Actions     []string           `json:"actions,omitempty"`
}

// Validate checks if the generate policy request is valid.
func (r *GeneratePolicyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Intent,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 4000),
		),
		validation.Field(&r.Kind, validation.Required, kindRule),
		validation.Field(&r.AccessModel, validation.Required, accessModelRule),
		validation.Field(&r.Namespace, namespaceRules...),
	)
}

// ToInput converts the request into the use case input.
func (r *GeneratePolicyRequest) ToInput() *domain.GenerateInput {
	return &domain.GenerateInput{
		Intent:      r.Intent,
		Kind:        r.Kind,
		AccessModel: r.AccessModel,
		Namespace:   r.Namespace,
		Subjects:    r.Subjects,
		Resources:   r.Resources,
		Actions:     r.Actions,
	}
}

// EvaluateRequest asks for an access decision.
type EvaluateRequest struct {
	Subject   string         `json:"subject"`
	Resource  string         `json:"resource"`
	Action    string         `json:"action"`
	Namespace string         `json:"namespace"`
	Context   map[string]any `json:"context"`
}

// Validate checks if the evaluate request is valid.
func (r *EvaluateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Subject, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Resource, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Action, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Namespace, namespaceRules...),
	)
}

// ToDecisionRequest converts the request into the domain decision request.
func (r *EvaluateRequest) ToDecisionRequest() *domain.DecisionRequest {
	return &domain.DecisionRequest{
		Subject:   r.Subject,
		Resource:  r.Resource,
		Action:    r.Action,
		Namespace: r.Namespace,
		Context:   r.Context,
	}
}
