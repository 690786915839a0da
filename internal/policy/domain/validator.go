package domain

import (
	"strings"
)

// Validation messages.
const (
	MsgEmptyContent        = "Policy content cannot be empty"
	MsgNoSubjects          = "No subjects specified — policy may be overly broad"
	MsgNoResources         = "No resources specified — policy may be overly broad"
	MsgRegoNoPackage       = "Rego policy must have a package declaration"
	MsgRegoNoRules         = "Rego policy should define 'allow' or 'deny' rules"
	MsgCedarNoPermitForbid = "Cedar policy must have permit or forbid rules"
)

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	CoverageScore float32  `json:"coverage_score"`
}

// Validate checks a policy document. It is a pure function of p.
//
// Content must be non-empty. Empty subject or resource lists only warn. Rego
// needs a package declaration and should have allow or deny rules; Cedar needs
// permit or forbid. CoverageScore is 1.0 with no findings, 0.8 with warnings
// only and 0.0 once any error is present.
func Validate(p *Policy) ValidationResult {
	result := ValidationResult{Errors: []string{}, Warnings: []string{}}

	if p.Content == "" {
		result.Errors = append(result.Errors, MsgEmptyContent)
	}
	if len(p.Subjects) == 0 {
		result.Warnings = append(result.Warnings, MsgNoSubjects)
	}
	if len(p.Resources) == 0 {
		result.Warnings = append(result.Warnings, MsgNoResources)
	}

	switch p.Kind {
	case KindRego:
		if !strings.Contains(p.Content, "package") {
			result.Errors = append(result.Errors, MsgRegoNoPackage)
		}
		if !strings.Contains(p.Content, "allow") && !strings.Contains(p.Content, "deny") {
			result.Warnings = append(result.Warnings, MsgRegoNoRules)
		}
	case KindCedar:
		if !strings.Contains(p.Content, "permit") && !strings.Contains(p.Content, "forbid") {
			result.Errors = append(result.Errors, MsgCedarNoPermitForbid)
		}
	case KindRbacYaml, KindIstioAuthz:
	}

	result.Passed = len(result.Errors) == 0
	switch {
	case !result.Passed:
		result.CoverageScore = 0.0
	case len(result.Warnings) > 0:
		result.CoverageScore = 0.8
	default:
		result.CoverageScore = 1.0
	}
	return result
}
