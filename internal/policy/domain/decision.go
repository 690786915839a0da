package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Decision reasons.
const (
	ReasonNoApplicablePolicies = "No applicable policies found — deny by default"
	ReasonImplicitDeny         = "No matching policy rule — implicit deny"
	ReasonAllowedByPrefix      = "Allowed by policy: "
)

// DecisionRequest asks whether subject may perform action on resource.
type DecisionRequest struct {
	Subject   string         `json:"subject"`
	Resource  string         `json:"resource"`
	Action    string         `json:"action"`
	Namespace string         `json:"namespace"`
	Context   map[string]any `json:"context"`
}

// DecisionResponse is the outcome of evaluating a DecisionRequest.
type DecisionResponse struct {
	Allowed        bool          `json:"allowed"`
	Reason         string        `json:"reason"`
	PolicyID       *uuid.UUID    `json:"policy_id"`
	PolicyName     *string       `json:"policy_name"`
	EvaluationTime time.Duration `json:"-"`
	DecisionID     uuid.UUID     `json:"decision_id"`
}

// Evaluation is the policy-store part of a decision, before timing and ids.
type Evaluation struct {
	Allowed bool
	Reason  string
	Policy  *Policy
}

// Applicable reports whether p takes part in decisions for namespace.
func Applicable(p *Policy, namespace string) bool {
	return p.Status == StatusActive && (p.Namespace == namespace || p.Namespace == SystemNamespace)
}

// Evaluate applies first-match-wins over policies in the given order. The
// first applicable policy whose subject, resource and action lists all match
// allows the request; otherwise the request is denied.
func Evaluate(policies []*Policy, req *DecisionRequest) Evaluation {
	applicable := 0
	for _, p := range policies {
		if !Applicable(p, req.Namespace) {
			continue
		}
		applicable++
		if Matches(p, req) {
			return Evaluation{Allowed: true, Reason: ReasonAllowedByPrefix + p.Name, Policy: p}
		}
	}

	if applicable == 0 {
		return Evaluation{Reason: ReasonNoApplicablePolicies}
	}
	return Evaluation{Reason: ReasonImplicitDeny}
}

// Matches reports whether every pattern list of p admits req.
func Matches(p *Policy, req *DecisionRequest) bool {
	return MatchSubject(p.Subjects, req.Subject) &&
		MatchResource(p.Resources, req.Resource) &&
		MatchAction(p.Actions, req.Action)
}

// MatchSubject matches an empty list, the exact subject, a "prefix/*" pattern
// covering the subject, or any "role:" pattern. Role membership is not checked.
func MatchSubject(patterns []string, subject string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if pattern == subject || strings.HasPrefix(pattern, "role:") || matchPrefixWildcard(pattern, subject) {
			return true
		}
	}
	return false
}

// MatchResource matches an empty list, the exact resource, "*", or a
// "prefix/*" pattern whose prefix the resource lives under.
func MatchResource(patterns []string, resource string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if pattern == resource || pattern == "*" || matchPrefixWildcard(pattern, resource) {
			return true
		}
	}
	return false
}

// MatchAction matches an empty list, the exact action or "*".
func MatchAction(actions []string, action string) bool {
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if a == action || a == "*" {
			return true
		}
	}
	return false
}

// matchPrefixWildcard reports whether value lies under pattern "prefix/*".
func matchPrefixWildcard(pattern, value string) bool {
	prefix, ok := strings.CutSuffix(pattern, "*")
	if !ok || !strings.HasSuffix(prefix, "/") {
		return false
	}
	return strings.HasPrefix(value, prefix)
}
