package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Response section markers a model router is asked to emit.
const (
	MarkerPolicy      = "---POLICY---"
	MarkerExplanation = "---EXPLANATION---"
	MarkerEnd         = "---END---"

	// FallbackExplanation is used when the response carries no markers.
	FallbackExplanation = "AI-generated policy"

	// GeneratedPolicyTag is added to every generated policy.
	GeneratedPolicyTag = "ai-generated"
)

// GenerateInput is a natural-language request for a policy.
type GenerateInput struct {
	Intent      string
	Kind        Kind
	AccessModel AccessModel
	Namespace   string
	Subjects    []string
	Resources   []string
	Actions     []string
}

// RouteResult is what a model router returns for a prompt.
type RouteResult struct {
	Content string
	Model   string
	Tokens  *int
}

// GenerateOutput is a generated and stored Draft policy.
type GenerateOutput struct {
	Policy         *Policy
	Validation     ValidationResult
	GenerationTime time.Duration
	ModelUsed      string
	TokensUsed     *int
}

const promptTemplate = `You are ZedID, an expert identity and access management policy generator.

Generate a %s policy using the %s model.

SECURITY INTENT:
%s

CONTEXT:
- Namespace: %s
%s
%s
%s

REQUIREMENTS:
1. Follow zero-trust principles: deny by default
2. Use least-privilege access
3. Include comments explaining each rule
4. Make the policy production-ready
5. Include trust_level checks where appropriate

OUTPUT FORMAT:
Provide your response in this exact structure:
` + MarkerPolicy + `
[The complete policy code here]
` + MarkerExplanation + `
[A clear, non-technical explanation of what this policy does and why]
` + MarkerEnd

// BuildPrompt renders the generation prompt for input. Hint lines are left
// empty when the caller supplied no subjects, resources or actions.
func BuildPrompt(input *GenerateInput) string {
	return fmt.Sprintf(promptTemplate,
		input.Kind.DisplayName(),
		input.AccessModel.DisplayName(),
		input.Intent,
		input.Namespace,
		hint("Subjects", input.Subjects),
		hint("Resources", input.Resources),
		hint("Actions", input.Actions),
	)
}

func hint(label string, values []string) string {
	if values == nil {
		return ""
	}
	return label + ": " + strings.Join(values, ", ")
}

// ParseModelResponse splits a router response into policy content and
// explanation. Without both the policy and explanation markers the whole
// response is the content.
func ParseModelResponse(response string) (content, explanation string) {
	policyStart := strings.Index(response, MarkerPolicy)
	explanationStart := strings.Index(response, MarkerExplanation)
	if policyStart < 0 || explanationStart < 0 || explanationStart < policyStart {
		return response, FallbackExplanation
	}

	content = strings.TrimSpace(response[policyStart+len(MarkerPolicy) : explanationStart])
	rest := response[explanationStart+len(MarkerExplanation):]
	if end := strings.Index(rest, MarkerEnd); end >= 0 {
		rest = rest[:end]
	}
	return content, strings.TrimSpace(rest)
}

// DerivePolicyName builds "policy-<slug>" from the first five words of intent,
// lower-cased, keeping only Unicode letters, digits and hyphens.
func DerivePolicyName(intent string) string {
	words := strings.Fields(intent)
	if len(words) > 5 {
		words = words[:5]
	}

	slug := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			return r
		}
		return -1
	}, strings.ToLower(strings.Join(words, "-")))

	return "policy-" + slug
}

// NewGeneratedPolicy builds the Draft policy for a router result.
func NewGeneratedPolicy(input *GenerateInput, result *RouteResult, createdBy string, now time.Time) *Policy {
	content, explanation := ParseModelResponse(result.Content)
	intent := input.Intent
	model := result.Model

	policy := NewDraftPolicy(CreatePolicyInput{
		Name:                  DerivePolicyName(input.Intent),
		Description:           input.Intent,
		Kind:                  input.Kind,
		AccessModel:           input.AccessModel,
		Content:               content,
		Explanation:           explanation,
		NaturalLanguageIntent: &intent,
		Namespace:             input.Namespace,
		Subjects:              input.Subjects,
		Resources:             input.Resources,
		Actions:               input.Actions,
		Tags:                  []string{GeneratedPolicyTag},
	}, createdBy, now)
	policy.AIGenerated = true
	policy.AIModelUsed = &model
	return policy
}
