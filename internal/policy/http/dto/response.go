package dto

import (
	"time"

	"github.com/sundacoder/ZedID/internal/policy/domain"
)

// PolicyResponse represents a policy in API responses.
type PolicyResponse struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Kind                  domain.Kind        `json:"kind"`
	AccessModel           domain.AccessModel `json:"access_model"`
	Status                domain.Status      `json:"status"`
	Content               string             `json:"content"`
	Explanation           string             `json:"explanation"`
	NaturalLanguageIntent *string            `json:"natural_language_intent"`
	Namespace             string             `json:"namespace"`
	Subjects              []string           `json:"subjects"`
	Resources             []string           `json:"resources"`
	Actions               []string           `json:"actions"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
	CreatedBy             string             `json:"created_by"`
	Version               uint32             `json:"version"`
	Tags                  []string           `json:"tags"`
	AIGenerated           bool               `json:"ai_generated"`
	AIModelUsed           *string            `json:"ai_model_used"`
	ValidationPassed      bool               `json:"validation_passed"`
}

// MapPolicyToResponse converts a domain policy to an API response.
func MapPolicyToResponse(p *domain.Policy) PolicyResponse {
	return PolicyResponse{
		ID:                    p.ID.String(),
		Name:                  p.Name,
		Description:           p.Description,
		Kind:                  p.Kind,
		AccessModel:           p.AccessModel,
		Status:                p.Status,
		Content:               p.Content,
		Explanation:           p.Explanation,
		NaturalLanguageIntent: p.NaturalLanguageIntent,
		Namespace:             p.Namespace,
		Subjects:              p.Subjects,
		Resources:             p.Resources,
		Actions:               p.Actions,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
		CreatedBy:             p.CreatedBy,
		Version:               p.Version,
		Tags:                  p.Tags,
		AIGenerated:           p.AIGenerated,
		AIModelUsed:           p.AIModelUsed,
		ValidationPassed:      p.ValidationPassed,
	}
}

// ListPoliciesResponse lists policies in decision order.
type ListPoliciesResponse struct {
	Policies []PolicyResponse `json:"policies"`
	Total    int              `json:"total"`
}

// MapPoliciesToListResponse converts domain policies to a list API response.
func MapPoliciesToListResponse(policies []*domain.Policy) ListPoliciesResponse {
	responses := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, MapPolicyToResponse(p))
	}
	return ListPoliciesResponse{Policies: responses, Total: len(responses)}
}

// GeneratePolicyResponse is a generated Draft policy with its validation outcome.
type GeneratePolicyResponse struct {
	Policy           PolicyResponse          `json:"policy"`
	ValidationResult domain.ValidationResult `json:"validation_result"`
	GenerationTimeMs int64                   `json:"generation_time_ms"`
	ModelUsed        string                  `json:"model_used"`
	TokensUsed       *int                    `json:"tokens_used"`
}

// MapGenerateOutputToResponse converts a generation output to an API response.
func MapGenerateOutputToResponse(output *domain.GenerateOutput) GeneratePolicyResponse {
	return GeneratePolicyResponse{
		Policy:           MapPolicyToResponse(output.Policy),
		ValidationResult: output.Validation,
		GenerationTimeMs: output.GenerationTime.Milliseconds(),
		ModelUsed:        output.ModelUsed,
		TokensUsed:       output.TokensUsed,
	}
}

// ValidatePolicyResponse is a policy together with a fresh validation outcome.
type ValidatePolicyResponse struct {
	Policy           PolicyResponse          `json:"policy"`
	ValidationResult domain.ValidationResult `json:"validation_result"`
}

// DecisionResponse is the outcome of an access decision.
type DecisionResponse struct {
	Allowed          bool    `json:"allowed"`
	Reason           string  `json:"reason"`
	PolicyID         *string `json:"policy_id"`
	PolicyName       *string `json:"policy_name"`
	EvaluationTimeMs int64   `json:"evaluation_time_ms"`
	DecisionID       string  `json:"decision_id"`
}

// MapDecisionToResponse converts a domain decision to an API response.
func MapDecisionToResponse(d *domain.DecisionResponse) DecisionResponse {
	response := DecisionResponse{
		Allowed:          d.Allowed,
		Reason:           d.Reason,
		PolicyName:       d.PolicyName,
		EvaluationTimeMs: d.EvaluationTime.Milliseconds(),
		DecisionID:       d.DecisionID.String(),
	}
	if d.PolicyID != nil {
		policyID := d.PolicyID.String()
		response.PolicyID = &policyID
	}
	return response
}
