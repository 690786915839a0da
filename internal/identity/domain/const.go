// Package domain defines the identity model of ZedID: workload, AI agent,
// human and service account identities, their SPIFFE identifiers, trust levels,
// short-lived credentials and bearer token claims.
package domain

import (
	"fmt"
	"strings"
)

// Kind is the category of a principal.
type Kind string

const (
	// KindHuman is an interactive user. Humans get an email but no SPIFFE ID.
	KindHuman Kind = "human"
	// KindWorkload is a service running in a namespace.
	KindWorkload Kind = "workload"
	// KindAIAgent is an autonomous agent acting on behalf of a platform.
	KindAIAgent Kind = "ai_agent"
	// KindServiceAccount is derived exactly like a workload.
	KindServiceAccount Kind = "service_account"
)

// Validate reports whether k is one of the known kinds.
func (k Kind) Validate() error {
	switch k {
	case KindHuman, KindWorkload, KindAIAgent, KindServiceAccount:
		return nil
	default:
		return fmt.Errorf("unknown identity kind %q", string(k))
	}
}

// TrustLevel orders how much a principal is trusted. Higher is more trusted.
type TrustLevel uint8

const (
	TrustUntrusted TrustLevel = iota
	TrustLow
	TrustMedium
	TrustHigh
	TrustCritical
)

var trustLevelNames = [...]string{"untrusted", "low", "medium", "high", "critical"}

// String returns the snake_case name of the level.
func (l TrustLevel) String() string {
	if int(l) < len(trustLevelNames) {
		return trustLevelNames[l]
	}
	return fmt.Sprintf("trust_level(%d)", uint8(l))
}

// Validate reports whether l is within Untrusted..Critical.
func (l TrustLevel) Validate() error {
	if l > TrustCritical {
		return fmt.Errorf("trust level %d out of range", uint8(l))
	}
	return nil
}

// MarshalText encodes the level by name so JSON carries "high" rather than 3.
func (l TrustLevel) MarshalText() ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return []byte(l.String()), nil
}

// UnmarshalText accepts the level name, case-insensitively.
func (l *TrustLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseTrustLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseTrustLevel parses a level name.
func ParseTrustLevel(s string) (TrustLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range trustLevelNames {
		if n == name {
			return TrustLevel(i), nil
		}
	}
	return TrustUntrusted, fmt.Errorf("unknown trust level %q", s)
}
