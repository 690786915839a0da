package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// WorkloadSvidLifetime is the informational SVID expiry stamped on new workloads.
	WorkloadSvidLifetime = time.Hour
	// AgentSvidLifetime is the informational SVID expiry stamped on new AI agents.
	AgentSvidLifetime = 4 * time.Hour
)

// Identity is a registered principal. Identities are never deleted; only
// IsActive and TrustLevel change after creation.
type Identity struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Kind       Kind              `json:"kind"`
	TrustLevel TrustLevel        `json:"trust_level"`
	SpiffeID   *string           `json:"spiffe_id,omitempty"`
	Email      *string           `json:"email,omitempty"`
	Namespace  string            `json:"namespace"`
	Labels     map[string]string `json:"labels"`
	CreatedAt  time.Time         `json:"created_at"`
	LastSeen   time.Time         `json:"last_seen"`
	IsActive   bool              `json:"is_active"`
	SvidExpiry *time.Time        `json:"svid_expiry,omitempty"`
}

// CreateIdentityInput is what a caller supplies to register an identity.
// The trust domain is never taken from the caller.
type CreateIdentityInput struct {
	Kind      Kind
	Name      string
	Namespace string
	Email     *string
	Labels    map[string]string
}

// NewIdentity derives a full identity from input under trustDomain:
//
//   - workload and service_account: spiffe://<td>/ns/<ns>/sa/<name>, trust high, SVID expiry +1h
//   - ai_agent: spiffe://<td>/ns/<ns>/agent/<name>, trust medium, SVID expiry +4h
//   - human: no SPIFFE ID, trust medium, email as given or <name>@<td>
func NewIdentity(input CreateIdentityInput, trustDomain string, now time.Time) *Identity {
	labels := input.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	identity := &Identity{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      input.Name,
		Kind:      input.Kind,
		Namespace: input.Namespace,
		Labels:    labels,
		CreatedAt: now,
		LastSeen:  now,
		IsActive:  true,
	}

	switch input.Kind {
	case KindWorkload, KindServiceAccount:
		uri := WorkloadSpiffeID(trustDomain, input.Namespace, input.Name).String()
		expiry := now.Add(WorkloadSvidLifetime)
		identity.SpiffeID = &uri
		identity.SvidExpiry = &expiry
		identity.TrustLevel = TrustHigh
	case KindAIAgent:
		uri := AgentSpiffeID(trustDomain, input.Namespace, input.Name).String()
		expiry := now.Add(AgentSvidLifetime)
		identity.SpiffeID = &uri
		identity.SvidExpiry = &expiry
		identity.TrustLevel = TrustMedium
	case KindHuman:
		email := input.Name + "@" + trustDomain
		if input.Email != nil && *input.Email != "" {
			email = *input.Email
		}
		identity.Email = &email
		identity.TrustLevel = TrustMedium
	}

	return identity
}

// IsSvidValid reports whether the informational SVID expiry lies in the future.
func (i *Identity) IsSvidValid(now time.Time) bool {
	return i.SvidExpiry != nil && now.Before(*i.SvidExpiry)
}

// SvidTTLSeconds returns the seconds left until SvidExpiry, or 0.
func (i *Identity) SvidTTLSeconds(now time.Time) int64 {
	if !i.IsSvidValid(now) {
		return 0
	}
	return int64(i.SvidExpiry.Sub(now) / time.Second)
}

// CreateIdentityOutput is a newly registered identity plus the initial
// credential issued for it, when it has a SPIFFE ID.
type CreateIdentityOutput struct {
	Identity   *Identity
	Credential *Credential
}
