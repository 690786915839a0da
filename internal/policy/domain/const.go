package domain

import (
	"fmt"
)

// Kind is the language a policy document is written in.
type Kind string

const (
	KindRego       Kind = "rego"
	KindCedar      Kind = "cedar"
	KindRbacYaml   Kind = "rbac_yaml"
	KindIstioAuthz Kind = "istio_authz"
)

// Kinds lists every policy kind.
var Kinds = []Kind{KindRego, KindCedar, KindRbacYaml, KindIstioAuthz}

// Validate reports whether k is a known kind.
func (k Kind) Validate() error {
	switch k {
	case KindRego, KindCedar, KindRbacYaml, KindIstioAuthz:
		return nil
	default:
		return fmt.Errorf("unknown policy kind %q", string(k))
	}
}

// DisplayName is the human name of the policy language used in generation prompts.
func (k Kind) DisplayName() string {
	switch k {
	case KindRego:
		return "Open Policy Agent (OPA) Rego"
	case KindCedar:
		return "AWS Cedar"
	case KindRbacYaml:
		return "YAML RBAC"
	case KindIstioAuthz:
		return "Istio AuthorizationPolicy"
	default:
		return string(k)
	}
}

// AccessModel is the access control model a policy expresses.
type AccessModel string

const (
	AccessModelRBAC      AccessModel = "rbac"
	AccessModelABAC      AccessModel = "abac"
	AccessModelReBAC     AccessModel = "rebac"
	AccessModelZeroTrust AccessModel = "zero_trust"
)

// AccessModels lists every access model.
var AccessModels = []AccessModel{AccessModelRBAC, AccessModelABAC, AccessModelReBAC, AccessModelZeroTrust}

// Validate reports whether m is a known access model.
func (m AccessModel) Validate() error {
	switch m {
	case AccessModelRBAC, AccessModelABAC, AccessModelReBAC, AccessModelZeroTrust:
		return nil
	default:
		return fmt.Errorf("unknown access model %q", string(m))
	}
}

// DisplayName is the human name of the access model used in generation prompts.
func (m AccessModel) DisplayName() string {
	switch m {
	case AccessModelRBAC:
		return "Role-Based Access Control (RBAC)"
	case AccessModelABAC:
		return "Attribute-Based Access Control (ABAC)"
	case AccessModelReBAC:
		return "Relationship-Based Access Control (ReBAC)"
	case AccessModelZeroTrust:
		return "Zero Trust (deny-by-default, least privilege)"
	default:
		return string(m)
	}
}

// Status is the lifecycle state of a policy. Only Active policies take part
// in decisions; Archived is terminal.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusReview   Status = "review"
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
	StatusArchived Status = "archived"
)

// Validate reports whether s is a known status.
func (s Status) Validate() error {
	switch s {
	case StatusDraft, StatusReview, StatusActive, StatusDisabled, StatusArchived:
		return nil
	default:
		return fmt.Errorf("unknown policy status %q", string(s))
	}
}

// CanTransitionTo reports whether a policy in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	if s == StatusArchived {
		return false
	}
	switch next {
	case StatusReview, StatusActive, StatusDisabled, StatusArchived:
		return true
	case StatusDraft:
		return s == StatusDraft
	default:
		return false
	}
}

// SystemNamespace holds policies that apply to every namespace.
const SystemNamespace = "system"
