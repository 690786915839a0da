package domain

import (
	"fmt"
	"strings"
)

const spiffeScheme = "spiffe://"

// SpiffeID is a parsed spiffe://<trust-domain>/<path> URI.
type SpiffeID struct {
	TrustDomain string
	Path        string // Without the leading slash
}

// ParseSpiffeID parses uri. The scheme, a non-empty trust domain and a
// non-empty path are all required.
func ParseSpiffeID(uri string) (SpiffeID, error) {
	rest, ok := strings.CutPrefix(uri, spiffeScheme)
	if !ok {
		return SpiffeID{}, fmt.Errorf("%w: missing %s scheme", ErrInvalidSpiffeID, spiffeScheme)
	}

	trustDomain, path, ok := strings.Cut(rest, "/")
	if !ok || trustDomain == "" || path == "" {
		return SpiffeID{}, fmt.Errorf("%w: expected %s<trust-domain>/<path>", ErrInvalidSpiffeID, spiffeScheme)
	}

	return SpiffeID{TrustDomain: trustDomain, Path: path}, nil
}

// String renders the URI form.
func (s SpiffeID) String() string {
	return spiffeScheme + s.TrustDomain + "/" + s.Path
}

// MemberOf reports whether the identifier belongs to trustDomain.
func (s SpiffeID) MemberOf(trustDomain string) bool {
	return s.TrustDomain == trustDomain
}

// WorkloadSpiffeID builds spiffe://<td>/ns/<namespace>/sa/<name>.
func WorkloadSpiffeID(trustDomain, namespace, name string) SpiffeID {
	return SpiffeID{TrustDomain: trustDomain, Path: "ns/" + namespace + "/sa/" + name}
}

// AgentSpiffeID builds spiffe://<td>/ns/<namespace>/agent/<name>.
func AgentSpiffeID(trustDomain, namespace, name string) SpiffeID {
	return SpiffeID{TrustDomain: trustDomain, Path: "ns/" + namespace + "/agent/" + name}
}
